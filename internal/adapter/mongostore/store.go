// Package mongostore implements domain.PosStore on MongoDB.
//
// Name uniqueness is enforced by a unique index on the name field, so
// concurrent upserts racing on the same name resolve with exactly one
// winner. IDs come from a counters collection incremented atomically with
// FindOneAndUpdate.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscoffee/pos-service/internal/domain"
)

const (
	posCollection      = "pos"
	countersCollection = "counters"
	posSequenceKey     = "pos_id"
)

// Store is a MongoDB-backed PosStore.
type Store struct {
	client   *mongo.Client
	pos      *mongo.Collection
	counters *mongo.Collection
	clock    clockwork.Clock
	logger   *slog.Logger
}

// Connect establishes the MongoDB connection, verifies it with a ping, and
// ensures the unique name index exists.
func Connect(ctx context.Context, uri, database string, clock clockwork.Clock, logger *slog.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		pos:      db.Collection(posCollection),
		counters: db.Collection(countersCollection),
		clock:    clock,
		logger:   logger,
	}

	_, err = s.pos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create name index: %w", err)
	}

	logger.Info("connected to mongodb", "database", database)
	return s, nil
}

// GetAll returns every persisted POS.
func (s *Store) GetAll(ctx context.Context) ([]domain.Pos, error) {
	cursor, err := s.pos.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all pos: %w", err)
	}
	var all []domain.Pos
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("decode pos list: %w", err)
	}
	return all, nil
}

// GetByID returns a single POS, failing with domain.PosNotFoundError when
// no record has the ID.
func (s *Store) GetByID(ctx context.Context, id int64) (domain.Pos, error) {
	var pos domain.Pos
	err := s.pos.FindOne(ctx, bson.M{"_id": id}).Decode(&pos)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Pos{}, &domain.PosNotFoundError{ID: id}
	}
	if err != nil {
		return domain.Pos{}, fmt.Errorf("find pos %d: %w", id, err)
	}
	return pos, nil
}

// Upsert inserts a new POS (assigning the next sequence ID and CreatedAt)
// or replaces an existing one (preserving CreatedAt, refreshing UpdatedAt).
// A unique-index violation on name maps to domain.DuplicateNameError.
func (s *Store) Upsert(ctx context.Context, pos domain.Pos) (domain.Pos, error) {
	now := s.clock.Now().UTC()

	if pos.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return domain.Pos{}, err
		}
		pos.ID = id
		pos.CreatedAt = now
		pos.UpdatedAt = now

		if _, err := s.pos.InsertOne(ctx, pos); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.Pos{}, &domain.DuplicateNameError{Name: pos.Name}
			}
			return domain.Pos{}, fmt.Errorf("insert pos: %w", err)
		}
		return pos, nil
	}

	existing, err := s.GetByID(ctx, pos.ID)
	if err != nil {
		return domain.Pos{}, err
	}
	pos.CreatedAt = existing.CreatedAt
	pos.UpdatedAt = now

	if _, err := s.pos.ReplaceOne(ctx, bson.M{"_id": pos.ID}, pos); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Pos{}, &domain.DuplicateNameError{Name: pos.Name}
		}
		return domain.Pos{}, fmt.Errorf("replace pos %d: %w", pos.ID, err)
	}
	return pos, nil
}

// Clear removes all POS records. The ID sequence is left untouched so IDs
// are never reused.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.pos.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear pos: %w", err)
	}
	return nil
}

// CheckReadiness reports whether the database connection is usable.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// nextID atomically increments and returns the POS ID sequence.
func (s *Store) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": posSequenceKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next pos id: %w", err)
	}
	return counter.Seq, nil
}
