package memxpg

import (
	"context"
	"database/sql"
	"time"

	"github.com/Abraxas-365/convmem/pkg/memx"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSummaryStore is the PostgreSQL implementation of memx.SummaryStore.
//
// Expected schema:
//
//	CREATE TABLE memory_summaries (
//	    id          UUID PRIMARY KEY,
//	    entity_type TEXT NOT NULL,
//	    entity_id   TEXT NOT NULL,
//	    model_key   TEXT NOT NULL DEFAULT '',
//	    summary     TEXT NOT NULL,
//	    marker      INTEGER NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL,
//	    UNIQUE (entity_type, entity_id, model_key)
//	);
type PostgresSummaryStore struct {
	db *sqlx.DB
}

// NewPostgresSummaryStore creates a new Postgres-backed summary store.
func NewPostgresSummaryStore(db *sqlx.DB) memx.SummaryStore {
	return &PostgresSummaryStore{db: db}
}

// GetSummary loads the record for an entity, or (nil, nil) when none exists.
func (s *PostgresSummaryStore) GetSummary(ctx context.Context, entityType, entityID, modelKey string) (*memx.SummaryRecord, error) {
	var rec summaryPersistence
	query := `SELECT * FROM memory_summaries WHERE entity_type = $1 AND entity_id = $2 AND model_key = $3`
	err := s.db.GetContext(ctx, &rec, query, entityType, entityID, modelKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, pgErrors.NewWithCause(ErrQuery, err).
			WithDetail("entity_type", entityType).
			WithDetail("entity_id", entityID)
	}
	domain := toDomain(rec)
	return &domain, nil
}

// UpsertSummary creates or replaces the record for its unique key.
func (s *PostgresSummaryStore) UpsertSummary(ctx context.Context, input memx.UpsertSummaryInput) error {
	now := time.Now().UTC()
	rec := summaryPersistence{
		ID:         uuid.New().String(),
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		ModelKey:   input.ModelKey,
		Summary:    input.Summary,
		Marker:     int(input.Marker),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO memory_summaries (
			id, entity_type, entity_id, model_key, summary, marker, created_at, updated_at
		) VALUES (
			:id, :entity_type, :entity_id, :model_key, :summary, :marker, :created_at, :updated_at
		)
		ON CONFLICT (entity_type, entity_id, model_key) DO UPDATE SET
			summary = EXCLUDED.summary,
			marker = EXCLUDED.marker,
			updated_at = EXCLUDED.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return pgErrors.NewWithCause(ErrUpsert, err).
				WithDetail("pq_code", string(pqErr.Code)).
				WithDetail("entity_id", input.EntityID)
		}
		return pgErrors.NewWithCause(ErrUpsert, err).
			WithDetail("entity_id", input.EntityID)
	}
	return nil
}

// DeleteSummariesByEntity removes every record for an entity across all
// model keys.
func (s *PostgresSummaryStore) DeleteSummariesByEntity(ctx context.Context, entityType, entityID string) error {
	query := `DELETE FROM memory_summaries WHERE entity_type = $1 AND entity_id = $2`
	if _, err := s.db.ExecContext(ctx, query, entityType, entityID); err != nil {
		return pgErrors.NewWithCause(ErrDelete, err).
			WithDetail("entity_type", entityType).
			WithDetail("entity_id", entityID)
	}
	return nil
}

type summaryPersistence struct {
	ID         string    `db:"id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	ModelKey   string    `db:"model_key"`
	Summary    string    `db:"summary"`
	Marker     int       `db:"marker"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func toDomain(p summaryPersistence) memx.SummaryRecord {
	return memx.SummaryRecord{
		ID:         p.ID,
		EntityType: p.EntityType,
		EntityID:   p.EntityID,
		ModelKey:   p.ModelKey,
		Summary:    p.Summary,
		Marker:     memx.Marker(p.Marker),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
