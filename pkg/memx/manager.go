package memx

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/convmem/pkg/chat"
	"github.com/Abraxas-365/convmem/pkg/logx"
)

// SummaryMessagePrefix marks the injected summary message so downstream
// consumers can tell it apart from real user input.
const SummaryMessagePrefix = "[Summary of earlier conversation]\n"

// BuildHistoryInput carries the per-call parameters of BuildHistory.
type BuildHistoryInput struct {
	// History is the full chronological, append-only message history.
	History []chat.Message

	// ContextWindow is the model's context window in tokens.
	ContextWindow int

	// MaxOutputTokens is the reservation for the model's response.
	MaxOutputTokens int

	// SystemPrompt is the system message text, if any. It is budgeted for
	// but not included in the returned sequence.
	SystemPrompt string

	// NewUserMessage is the pending user message appended to the result.
	NewUserMessage string

	// SummaryContext is an opaque payload passed through to the summarizer.
	SummaryContext map[string]any
}

// MemoryManager coordinates splitting and summarization for one history
// build at a time. It holds no per-conversation state; everything between
// calls lives in the SummaryStore.
type MemoryManager struct {
	store      SummaryStore
	summarizer Summarizer
	logger     *logx.Logger

	summarizationEnabled bool
	summarySlotTokens    int
	charsPerToken        int
}

// New creates a MemoryManager. Summarization is enabled by default and
// degrades to a no-op when either collaborator is missing.
func New(opts ...Option) *MemoryManager {
	m := &MemoryManager{
		logger:               logx.GetDefaultLogger(),
		summarizationEnabled: true,
		summarySlotTokens:    DefaultSummarySlotTokens,
		charsPerToken:        DefaultCharsPerToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// summarizationMode resolves the feature state once per call instead of
// scattering nil checks through the flow.
type summarizationMode int

const (
	summarizationReady summarizationMode = iota
	summarizationDisabled
	summarizationNoStore
	summarizationNoSummarizer
)

func (s summarizationMode) String() string {
	switch s {
	case summarizationReady:
		return "ready"
	case summarizationDisabled:
		return "disabled_by_config"
	case summarizationNoStore:
		return "no_store"
	case summarizationNoSummarizer:
		return "no_summarizer"
	default:
		return "unknown"
	}
}

func (m *MemoryManager) summarizationState() summarizationMode {
	switch {
	case !m.summarizationEnabled:
		return summarizationDisabled
	case m.store == nil:
		return summarizationNoStore
	case m.summarizer == nil:
		return summarizationNoSummarizer
	default:
		return summarizationReady
	}
}

// BuildHistory assembles the bounded message sequence for the next model
// call. When the history fits the budget it is returned untouched (plus the
// pending user message) without any store access. When the anchor pair
// cannot be honored the full history is sliding-window truncated instead.
// Otherwise the dropped middle tier is replaced by a summary resolved
// through the store and the summarizer, best-effort.
//
// Collaborator failures never propagate: they are logged and resolved via
// the best available fallback. The returned error is reserved for future
// use and currently always nil.
func (m *MemoryManager) BuildHistory(ctx context.Context, input BuildHistoryInput, memCtx *MemoryContext) ([]chat.Message, error) {
	cfg := ThreeTierConfig{
		BudgetConfig: BudgetConfig{
			ContextWindow:   input.ContextWindow,
			MaxOutputTokens: input.MaxOutputTokens,
			SystemPrompt:    input.SystemPrompt,
			NewUserMessage:  input.NewUserMessage,
			CharsPerToken:   m.charsPerToken,
		},
		SummarySlotTokens: m.summarySlotTokens,
	}

	split := SplitForThreeTierMemory(input.History, cfg)

	if !split.Truncated {
		return m.withPending(input.History, input.NewUserMessage), nil
	}

	if len(split.Anchor) == 0 {
		// The budget cannot honor the anchor pair. Fall back to a plain
		// sliding window over the full original history; summarization is
		// never attempted on this path.
		m.logger.WithFields(logx.Fields{
			"history_len": len(input.History),
			"budget":      cfg.AvailableBudget(),
		}).Debug("three-tier split not applicable, falling back to sliding window")
		window := TruncateToTokenBudget(input.History, cfg.BudgetConfig)
		return m.withPending(window, input.NewUserMessage), nil
	}

	out := make([]chat.Message, 0, len(split.Anchor)+len(split.Recent)+2)
	out = append(out, split.Anchor...)
	if memCtx != nil {
		if summary := m.resolveSummary(ctx, split.Dropped, *memCtx, input.SummaryContext); summary != nil {
			out = append(out, *summary)
		}
	} else {
		m.logger.WithField("dropped", len(split.Dropped)).
			Debug("no memory context supplied, dropped tier is lost")
	}
	out = append(out, split.Recent...)
	if input.NewUserMessage != "" {
		out = append(out, chat.NewUserMessage(input.NewUserMessage))
	}
	return out, nil
}

// DeleteSummaries purges every summary record for an entity. It is a no-op
// when no store is configured.
func (m *MemoryManager) DeleteSummaries(ctx context.Context, entityType, entityID string) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.DeleteSummariesByEntity(ctx, entityType, entityID); err != nil {
		return ErrStoreDelete(err).
			WithDetail("entity_type", entityType).
			WithDetail("entity_id", entityID)
	}
	return nil
}

// resolveSummary produces the summary message for the dropped tier, or nil
// when no summary is available. Unconditionally best-effort: every store and
// engine failure is caught, logged at warn level and resolved via the best
// available fallback.
func (m *MemoryManager) resolveSummary(ctx context.Context, dropped []chat.Message, memCtx MemoryContext, summaryContext map[string]any) *chat.Message {
	if len(dropped) == 0 {
		return nil
	}
	if mode := m.summarizationState(); mode != summarizationReady {
		m.logger.WithField("reason", mode.String()).Debug("summarization skipped")
		return nil
	}

	existing, err := m.store.GetSummary(ctx, memCtx.EntityType, memCtx.EntityID, memCtx.ModelKey)
	if err != nil {
		m.logger.WithError(ErrStoreRead(err)).WithFields(logx.Fields{
			"entity_type": memCtx.EntityType,
			"entity_id":   memCtx.EntityID,
		}).Warn("failed to load summary record")
		existing = nil
	}

	covered := 0
	existingSummary := ""
	if existing != nil {
		covered = existing.Marker.CoveredCount()
		existingSummary = existing.Summary
	}
	// The dropped tier is assumed append-only: previously dropped messages
	// are a strict prefix of the current dropped tier. A marker ahead of the
	// tier means the history was edited, which is undefined; clamp so the
	// slice below stays in bounds.
	if covered > len(dropped) {
		covered = len(dropped)
	}

	pending := dropped[covered:]
	if len(pending) == 0 && existing != nil {
		m.logger.WithField("covered", covered).Debug("summary already covers dropped tier")
		return m.summaryMessage(existing.Summary)
	}

	summary, err := m.summarizer.Summarize(ctx, renderMessagesText(pending), existingSummary, summaryContext)
	if err != nil {
		m.logger.WithError(ErrSummarize(err)).Warn("summarization engine failed")
		summary = ""
	}
	if summary == "" {
		if existingSummary != "" {
			return m.summaryMessage(existingSummary)
		}
		return nil
	}

	m.persistSummary(memCtx, summary, MarkerForCount(len(dropped)))
	return m.summaryMessage(summary)
}

// persistSummary writes the record without delaying the caller's response.
// Two concurrent builds for the same context may both read the same stale
// summary, summarize overlapping content and race here; last write wins,
// with no compare-and-swap on the marker. Accepted trade-off, favoring
// latency over strict consistency.
func (m *MemoryManager) persistSummary(memCtx MemoryContext, summary string, marker Marker) {
	store := m.store
	logger := m.logger
	go func() {
		err := store.UpsertSummary(context.Background(), UpsertSummaryInput{
			EntityType: memCtx.EntityType,
			EntityID:   memCtx.EntityID,
			ModelKey:   memCtx.ModelKey,
			Summary:    summary,
			Marker:     marker,
		})
		if err != nil {
			logger.WithError(ErrStoreWrite(err)).WithFields(logx.Fields{
				"entity_type": memCtx.EntityType,
				"entity_id":   memCtx.EntityID,
			}).Warn("failed to persist summary record")
		}
	}()
}

func (m *MemoryManager) summaryMessage(summary string) *chat.Message {
	msg := chat.Message{
		Role:     chat.RoleUser,
		Content:  SummaryMessagePrefix + summary,
		Metadata: map[string]any{"summarized": true},
	}
	return &msg
}

// withPending returns a copy of the messages with the pending user message
// appended, never aliasing the caller's slice.
func (m *MemoryManager) withPending(messages []chat.Message, newUserMessage string) []chat.Message {
	out := make([]chat.Message, len(messages), len(messages)+1)
	copy(out, messages)
	if newUserMessage != "" {
		out = append(out, chat.NewUserMessage(newUserMessage))
	}
	return out
}

// renderMessagesText renders messages as "role: content" lines joined by
// blank lines, the input format handed to the summarizer.
func renderMessagesText(messages []chat.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", msg.Role, msg.TextContent()))
	}
	return strings.Join(parts, "\n\n")
}
