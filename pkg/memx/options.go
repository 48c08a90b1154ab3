package memx

import "github.com/Abraxas-365/convmem/pkg/logx"

// Option configures a MemoryManager.
type Option func(*MemoryManager)

// WithStore attaches the summary persistence backend. Without one,
// summarization degrades to a no-op.
func WithStore(store SummaryStore) Option {
	return func(m *MemoryManager) { m.store = store }
}

// WithSummarizer attaches the summarization engine. Without one,
// summarization degrades to a no-op.
func WithSummarizer(summarizer Summarizer) Option {
	return func(m *MemoryManager) { m.summarizer = summarizer }
}

// WithLogger sets the logger. Defaults to the package-level logx logger.
func WithLogger(logger *logx.Logger) Option {
	return func(m *MemoryManager) { m.logger = logger }
}

// WithSummarization enables or disables summarization. Enabled by default.
func WithSummarization(enabled bool) Option {
	return func(m *MemoryManager) { m.summarizationEnabled = enabled }
}

// WithSummarySlotTokens sets the default reservation for the summary text.
func WithSummarySlotTokens(tokens int) Option {
	return func(m *MemoryManager) { m.summarySlotTokens = tokens }
}

// WithCharsPerToken sets the default characters-per-token ratio.
func WithCharsPerToken(ratio int) Option {
	return func(m *MemoryManager) { m.charsPerToken = ratio }
}
