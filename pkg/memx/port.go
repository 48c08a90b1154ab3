package memx

import (
	"context"
	"time"
)

// MemoryContext addresses the summary record for one conversation owner.
// It is supplied per call; the manager holds no per-conversation state.
type MemoryContext struct {
	EntityType string
	EntityID   string
	ModelKey   string
}

// SummaryRecord is a persisted conversation summary together with the
// summarized-through marker.
type SummaryRecord struct {
	ID         string
	EntityType string
	EntityID   string
	ModelKey   string
	Summary    string
	Marker     Marker
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpsertSummaryInput carries the fields of a create-or-replace write.
type UpsertSummaryInput struct {
	EntityType string
	EntityID   string
	ModelKey   string
	Summary    string
	Marker     Marker
}

// SummaryStore persists summary records keyed by
// (entity type, entity id, model key).
//
// GetSummary returns (nil, nil) when no record exists. UpsertSummary must
// create or replace atomically from the caller's perspective.
type SummaryStore interface {
	GetSummary(ctx context.Context, entityType, entityID, modelKey string) (*SummaryRecord, error)
	UpsertSummary(ctx context.Context, input UpsertSummaryInput) error
	DeleteSummariesByEntity(ctx context.Context, entityType, entityID string) error
}

// Summarizer produces a summary of dropped conversation text, optionally
// continuing an existing summary incrementally.
//
// An empty result with a nil error means "no summary produced" and is an
// ordinary generation outcome, not a failure. Returned errors are treated by
// the manager as unexpected, logged, and never retried.
type Summarizer interface {
	Summarize(ctx context.Context, messagesText, existingSummary string, summaryContext map[string]any) (string, error)
}
