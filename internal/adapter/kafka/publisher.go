// Package kafka publishes POS import events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/campuscoffee/pos-service/internal/domain"
)

// ImportEvent is the wire format published after a successful OSM import.
type ImportEvent struct {
	PosID      int64             `json:"pos_id"`
	Name       string            `json:"name"`
	Type       domain.PosType    `json:"type"`
	Campus     domain.CampusType `json:"campus"`
	OsmNodeID  int64             `json:"osm_node_id"`
	ImportedAt time.Time         `json:"imported_at"`
}

// Publisher produces import events to a Kafka topic.
// It implements service.ImportPublisher.
type Publisher struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured import topic.
func NewPublisher(brokers []string, topic string, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, clock: clock, logger: logger}
}

// PublishImport serializes and publishes one import event, keyed by POS ID.
func (p *Publisher) PublishImport(ctx context.Context, pos domain.Pos, nodeID int64) error {
	msg, err := serializeToMessage(pos, nodeID, p.clock.Now().UTC())
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish import event: %w", err)
	}
	p.logger.Debug("published import event", "pos_id", pos.ID, "node_id", nodeID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an import event into a Kafka message.
func serializeToMessage(pos domain.Pos, nodeID int64, importedAt time.Time) (kafkago.Message, error) {
	event := ImportEvent{
		PosID:      pos.ID,
		Name:       pos.Name,
		Type:       pos.Type,
		Campus:     pos.Campus,
		OsmNodeID:  nodeID,
		ImportedAt: importedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize import event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(pos.ID, 10)),
		Value: data,
	}, nil
}
