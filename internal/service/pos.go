// Package service implements the POS business logic: retrieval, the
// create-or-update contract, and the OSM import orchestration.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campuscoffee/pos-service/internal/domain"
	"github.com/campuscoffee/pos-service/internal/observability"
)

// ImportPublisher announces successful imports to interested downstream
// consumers. Publishing is best-effort; failures never fail an import.
type ImportPublisher interface {
	PublishImport(ctx context.Context, pos domain.Pos, nodeID int64) error
}

// PosService drives all POS operations against the store and the external
// geodata source.
type PosService struct {
	store     domain.PosStore
	nodes     domain.NodeFetcher
	publisher ImportPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a PosService. Pass a nil publisher to disable import events.
func New(store domain.PosStore, nodes domain.NodeFetcher, publisher ImportPublisher, logger *slog.Logger, metrics *observability.Metrics) *PosService {
	return &PosService{
		store:     store,
		nodes:     nodes,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// GetAll returns every persisted POS.
func (s *PosService) GetAll(ctx context.Context) ([]domain.Pos, error) {
	s.logger.Debug("retrieving all pos")
	return s.store.GetAll(ctx)
}

// GetByID returns the POS with the given ID, failing with
// domain.PosNotFoundError when it does not exist.
func (s *PosService) GetByID(ctx context.Context, id int64) (domain.Pos, error) {
	s.logger.Debug("retrieving pos", "id", id)
	return s.store.GetByID(ctx, id)
}

// Clear removes all POS records.
func (s *PosService) Clear(ctx context.Context) error {
	s.logger.Warn("clearing all pos data")
	return s.store.Clear(ctx)
}

// Upsert creates or updates a POS. A zero ID means creation and the store
// assigns an ID. A non-zero ID means update: the record must already exist,
// otherwise domain.PosNotFoundError is returned and the store upsert is
// never attempted. Name uniqueness violations surface unchanged as
// domain.DuplicateNameError.
func (s *PosService) Upsert(ctx context.Context, pos domain.Pos) (domain.Pos, error) {
	if pos.ID == 0 {
		s.logger.Info("creating new pos", "name", pos.Name)
		return s.performUpsert(ctx, pos, "create")
	}

	s.logger.Info("updating pos", "id", pos.ID)
	if _, err := s.store.GetByID(ctx, pos.ID); err != nil {
		s.metrics.UpsertsTotal.WithLabelValues("update", "not_found").Inc()
		return domain.Pos{}, err
	}
	return s.performUpsert(ctx, pos, "update")
}

// ImportFromOsmNode imports a POS from a single OSM node: fetch, normalize,
// upsert. Typed failures from each stage propagate unchanged; nothing is
// persisted unless all three stages succeed.
func (s *PosService) ImportFromOsmNode(ctx context.Context, nodeID int64) (domain.Pos, error) {
	s.logger.Info("importing pos from osm node", "node_id", nodeID)

	node, err := s.nodes.FetchNode(ctx, nodeID)
	if err != nil {
		s.metrics.ImportsTotal.WithLabelValues(importFailureOutcome(err)).Inc()
		return domain.Pos{}, err
	}

	candidate, err := domain.ConvertOsmNode(node)
	if err != nil {
		s.metrics.ImportsTotal.WithLabelValues("missing_fields").Inc()
		return domain.Pos{}, err
	}

	saved, err := s.Upsert(ctx, candidate)
	if err != nil {
		s.metrics.ImportsTotal.WithLabelValues("store_error").Inc()
		return domain.Pos{}, err
	}

	s.metrics.ImportsTotal.WithLabelValues("success").Inc()
	s.logger.Info("imported pos from osm node", "name", saved.Name, "node_id", nodeID)
	s.publishImport(ctx, saved, nodeID)

	return saved, nil
}

// performUpsert runs the store upsert with consistent error handling.
func (s *PosService) performUpsert(ctx context.Context, pos domain.Pos, op string) (domain.Pos, error) {
	saved, err := s.store.Upsert(ctx, pos)
	if err != nil {
		var duplicate *domain.DuplicateNameError
		if errors.As(err, &duplicate) {
			s.logger.Error("upsert rejected, duplicate name", "name", pos.Name)
			s.metrics.UpsertsTotal.WithLabelValues(op, "duplicate_name").Inc()
		} else {
			s.logger.Error("upsert failed", "name", pos.Name, "error", err)
			s.metrics.UpsertsTotal.WithLabelValues(op, "error").Inc()
		}
		return domain.Pos{}, err
	}

	s.metrics.UpsertsTotal.WithLabelValues(op, "success").Inc()
	s.logger.Info("upserted pos", "id", saved.ID)
	return saved, nil
}

// publishImport emits an import event when a publisher is wired.
func (s *PosService) publishImport(ctx context.Context, pos domain.Pos, nodeID int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishImport(ctx, pos, nodeID); err != nil {
		s.logger.Warn("publishing import event failed", "pos_id", pos.ID, "error", err)
	}
}

func importFailureOutcome(err error) string {
	var notFound *domain.NodeNotFoundError
	if errors.As(err, &notFound) {
		return "node_not_found"
	}
	var unavailable *domain.FetchUnavailableError
	if errors.As(err, &unavailable) {
		return "fetch_unavailable"
	}
	return "fetch_error"
}
