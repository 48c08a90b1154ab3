package memx

import "github.com/Abraxas-365/convmem/pkg/chat"

// SplitResult is the outcome of a three-tier split.
//
// When Truncated is true and Anchor is non-empty, the three tiers partition
// the input: len(Anchor)+len(Dropped)+len(Recent) == len(input), and
// concatenating them in that order reproduces chronological order.
//
// Truncated with an empty Anchor signals that the split is not applicable
// (exhausted budget, or an anchor pair that alone exceeds it) and the caller
// should fall back to sliding-window truncation over the full history.
type SplitResult struct {
	// Anchor holds the first user+assistant exchange, kept verbatim.
	// Either empty or exactly two messages.
	Anchor []chat.Message

	// Dropped holds the messages between the anchor and the recent tier.
	// They are candidates for summarization.
	Dropped []chat.Message

	// Recent holds the most recent messages, kept verbatim.
	Recent []chat.Message

	// ProcessedThroughIndex is the index of the last input message
	// considered, so callers can correlate against a persisted
	// summarized-through marker.
	ProcessedThroughIndex int

	// Truncated reports whether any truncation occurred.
	Truncated bool
}

// TruncateToTokenBudget walks the history from newest to oldest, keeping
// messages until the budget is exhausted, and returns the surviving suffix in
// chronological order.
//
// The walk stops entirely at the first message whose inclusion would exceed
// the budget; older messages are never considered even if individually
// smaller. This keeps the window contiguous rather than token-optimal. The
// algorithm never reorders and returns nil when nothing fits.
func TruncateToTokenBudget(messages []chat.Message, cfg BudgetConfig) []chat.Message {
	budget := cfg.AvailableBudget()
	if budget <= 0 || len(messages) == 0 {
		return nil
	}

	ratio := cfg.ratio()
	used := 0
	start := len(messages)
	for i := len(messages) - 1; i >= 0; i-- {
		cost := EstimateMessageTokens(messages[i], ratio)
		if used+cost > budget {
			break
		}
		used += cost
		start = i
	}
	if start == len(messages) {
		return nil
	}

	result := make([]chat.Message, len(messages)-start)
	copy(result, messages[start:])
	return result
}

// SplitForThreeTierMemory partitions the history into anchor pair, dropped
// middle and recent tail under the given budget.
//
// Histories shorter than two messages cannot carry an anchor pair and always
// report no truncation. The scheme assumes the history is append-only;
// behavior for histories edited or truncated non-append-only is undefined.
func SplitForThreeTierMemory(messages []chat.Message, cfg ThreeTierConfig) SplitResult {
	lastIndex := len(messages) - 1

	if len(messages) < 2 {
		return SplitResult{
			Recent:                messages,
			ProcessedThroughIndex: lastIndex,
		}
	}

	budget := cfg.AvailableBudget()
	if budget <= 0 {
		return fullTruncation(messages, lastIndex)
	}

	ratio := cfg.ratio()
	anchorCost := EstimateMessageTokens(messages[0], ratio) +
		EstimateMessageTokens(messages[1], ratio)

	// The anchor pair is never split. If it alone cannot fit, the split is
	// not applicable and the caller falls back to sliding-window mode.
	if anchorCost >= budget {
		return fullTruncation(messages, lastIndex)
	}

	total := 0
	for _, msg := range messages {
		total += EstimateMessageTokens(msg, ratio)
	}
	if total <= budget {
		// Everything fits; anchor is empty by convention on this path.
		return SplitResult{
			Recent:                messages,
			ProcessedThroughIndex: lastIndex,
		}
	}

	recentBudget := budget - anchorCost - cfg.SummarySlotTokens

	rest := messages[2:]
	used := 0
	start := len(rest)
	if recentBudget > 0 {
		for i := len(rest) - 1; i >= 0; i-- {
			cost := EstimateMessageTokens(rest[i], ratio)
			if used+cost > recentBudget {
				break
			}
			used += cost
			start = i
		}
	}

	return SplitResult{
		Anchor:                messages[:2],
		Dropped:               rest[:start],
		Recent:                rest[start:],
		ProcessedThroughIndex: lastIndex,
		Truncated:             true,
	}
}

// fullTruncation marks every message as dropped with an empty anchor, the
// signal for sliding-window fallback.
func fullTruncation(messages []chat.Message, lastIndex int) SplitResult {
	return SplitResult{
		Dropped:               messages,
		ProcessedThroughIndex: lastIndex,
		Truncated:             true,
	}
}
