// internal/basket/postgres_store.go
package basket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const uniqueViolation = "23505"

// PostgresStore keeps basket snapshots in a single JSONB column.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresStore creates a store on top of an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("basketservice/basketstore"),
	}
}

// Migrate creates the baskets table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS baskets (
			id UUID PRIMARY KEY,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("create baskets table: %w", err)
	}
	return nil
}

// Create inserts a new basket. The primary key makes the insert atomic per id.
func (s *PostgresStore) Create(ctx context.Context, b *Basket) (*Basket, error) {
	ctx, span := s.tracer.Start(ctx, "basketstore.create",
		trace.WithAttributes(attribute.String("basket.id", b.ID().String())),
	)
	defer span.End()

	state, err := marshalSnapshot(b)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO baskets (id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
	`, b.ID().UUID(), state, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			span.SetAttributes(attribute.Bool("conflict.detected", true))
			return nil, alreadyExists(b.ID())
		}
		span.RecordError(err)
		return nil, fmt.Errorf("insert basket: %w", err)
	}

	return b, nil
}

func (s *PostgresStore) Get(ctx context.Context, id BasketID) (*Basket, bool, error) {
	ctx, span := s.tracer.Start(ctx, "basketstore.get",
		trace.WithAttributes(attribute.String("basket.id", id.String())),
	)
	defer span.End()

	var state []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT state
		FROM baskets
		WHERE id = $1
	`, id.UUID()).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttributes(attribute.Bool("basket.found", false))
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, false, fmt.Errorf("load basket: %w", err)
	}

	b, err := unmarshalSnapshot(state)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	span.SetAttributes(
		attribute.Bool("basket.found", true),
		attribute.Int("basket.items", b.Len()),
	)
	return b, true, nil
}

// Save upserts the basket. There is no version predicate: the last write wins.
func (s *PostgresStore) Save(ctx context.Context, b *Basket) error {
	ctx, span := s.tracer.Start(ctx, "basketstore.save",
		trace.WithAttributes(
			attribute.String("basket.id", b.ID().String()),
			attribute.Int("basket.items", b.Len()),
		),
	)
	defer span.End()

	state, err := marshalSnapshot(b)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO baskets (id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE
		SET state = EXCLUDED.state,
		    updated_at = EXCLUDED.updated_at
	`, b.ID().UUID(), state, now)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("save basket: %w", err)
	}

	return nil
}
