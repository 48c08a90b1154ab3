package memx

// DefaultSafetyMargin is the token headroom subtracted from every budget to
// absorb estimation drift and per-message framing overhead.
const DefaultSafetyMargin = 200

// DefaultSummarySlotTokens is the default reservation for the eventual
// summary text in three-tier mode.
const DefaultSummarySlotTokens = 500

// BudgetConfig describes the token budget for a single history build.
type BudgetConfig struct {
	// ContextWindow is the model's total context window in tokens.
	ContextWindow int

	// MaxOutputTokens is the reservation for the model's response.
	MaxOutputTokens int

	// SystemPrompt is the system message text, if any. Its estimated cost is
	// subtracted from the available budget.
	SystemPrompt string

	// NewUserMessage is the pending user message to be appended after the
	// history. Its estimated cost is subtracted from the available budget.
	NewUserMessage string

	// CharsPerToken overrides the characters-per-token ratio.
	// Zero means DefaultCharsPerToken.
	CharsPerToken int

	// SafetyMargin overrides the token headroom. Zero means
	// DefaultSafetyMargin.
	SafetyMargin int
}

func (c BudgetConfig) ratio() int {
	if c.CharsPerToken <= 0 {
		return DefaultCharsPerToken
	}
	return c.CharsPerToken
}

func (c BudgetConfig) margin() int {
	if c.SafetyMargin <= 0 {
		return DefaultSafetyMargin
	}
	return c.SafetyMargin
}

// AvailableBudget computes the token allowance remaining for history after
// reserving output tokens, the safety margin and the fixed messages. The
// result may be negative; callers must treat a non-positive budget as
// "nothing fits".
func (c BudgetConfig) AvailableBudget() int {
	return c.ContextWindow -
		c.MaxOutputTokens -
		c.margin() -
		EstimateTokens(c.SystemPrompt, c.ratio()) -
		EstimateTokens(c.NewUserMessage, c.ratio())
}

// ThreeTierConfig extends BudgetConfig with the summary-slot reservation for
// three-tier splitting.
type ThreeTierConfig struct {
	BudgetConfig

	// SummarySlotTokens is the reservation for the eventual summary text,
	// subtracted from the budget available to the recent tier.
	SummarySlotTokens int
}
