package memx_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/convmem/pkg/chat"
	"github.com/Abraxas-365/convmem/pkg/memx"
)

// history builds an alternating user/assistant history where every message
// has exactly chars characters.
func history(n, chars int) []chat.Message {
	msgs := make([]chat.Message, n)
	for i := range msgs {
		content := strings.Repeat(string(rune('a'+i%26)), chars)
		if i%2 == 0 {
			msgs[i] = chat.NewUserMessage(content)
		} else {
			msgs[i] = chat.NewAssistantMessage(content)
		}
	}
	return msgs
}

// budget1000 is the shared scenario config: 1000-token window, 200 reserved
// for output, default 200 safety margin, so 600 tokens (2400 chars) remain.
func budget1000() memx.BudgetConfig {
	return memx.BudgetConfig{
		ContextWindow:   1000,
		MaxOutputTokens: 200,
	}
}

// --- TruncateToTokenBudget ---

func TestTruncateToTokenBudget_KeepsLastTwoOfThree(t *testing.T) {
	msgs := history(3, 1000) // 250 tokens each against a 600-token budget

	got := memx.TruncateToTokenBudget(msgs, budget1000())
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != msgs[1].Content || got[1].Content != msgs[2].Content {
		t.Fatal("expected the last two messages in original order")
	}
}

func TestTruncateToTokenBudget_EmptyHistory(t *testing.T) {
	if got := memx.TruncateToTokenBudget(nil, budget1000()); got != nil {
		t.Fatalf("expected nil for empty history, got %d messages", len(got))
	}
}

func TestTruncateToTokenBudget_ExhaustedBudget(t *testing.T) {
	cfg := memx.BudgetConfig{ContextWindow: 100, MaxOutputTokens: 100}
	if got := memx.TruncateToTokenBudget(history(3, 10), cfg); got != nil {
		t.Fatalf("expected nil for non-positive budget, got %d messages", len(got))
	}
}

func TestTruncateToTokenBudget_StopsAtFirstOverflow(t *testing.T) {
	// A small message hides behind an oversized one. The walk must stop at
	// the oversized message and never reach the small one behind it.
	msgs := []chat.Message{
		chat.NewUserMessage(strings.Repeat("a", 40)),        // 10 tokens
		chat.NewAssistantMessage(strings.Repeat("b", 2800)), // 700 tokens, over budget
		chat.NewUserMessage(strings.Repeat("c", 40)),        // 10 tokens
		chat.NewAssistantMessage(strings.Repeat("d", 40)),   // 10 tokens
	}

	got := memx.TruncateToTokenBudget(msgs, budget1000())
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != msgs[2].Content || got[1].Content != msgs[3].Content {
		t.Fatal("expected only the contiguous suffix after the oversized message")
	}
}

func TestTruncateToTokenBudget_SuffixStable(t *testing.T) {
	msgs := history(8, 400) // 100 tokens each, 6 fit in 600

	got := memx.TruncateToTokenBudget(msgs, budget1000())
	if len(got) == 0 {
		t.Fatal("expected a non-empty window")
	}
	offset := len(msgs) - len(got)
	for i, msg := range got {
		if msg.Content != msgs[offset+i].Content {
			t.Fatalf("result is not a contiguous suffix at position %d", i)
		}
	}
}

// --- SplitForThreeTierMemory ---

func threeTier(slot int) memx.ThreeTierConfig {
	return memx.ThreeTierConfig{BudgetConfig: budget1000(), SummarySlotTokens: slot}
}

func TestSplitForThreeTier_ShortHistoriesNeverTruncate(t *testing.T) {
	for _, n := range []int{0, 1} {
		res := memx.SplitForThreeTierMemory(history(n, 100000), threeTier(100))
		if res.Truncated {
			t.Errorf("history of %d messages must not report truncation", n)
		}
		if res.ProcessedThroughIndex != n-1 {
			t.Errorf("expected ProcessedThroughIndex %d, got %d", n-1, res.ProcessedThroughIndex)
		}
	}
}

func TestSplitForThreeTier_NoTruncationNeeded(t *testing.T) {
	msgs := history(4, 100) // 100 total tokens, well within budget

	res := memx.SplitForThreeTierMemory(msgs, threeTier(100))
	if res.Truncated {
		t.Fatal("expected no truncation")
	}
	if len(res.Anchor) != 0 {
		t.Fatal("anchor must be empty by convention on the fast path")
	}
	if len(res.Recent) != len(msgs) {
		t.Fatalf("expected full sequence as recent, got %d", len(res.Recent))
	}
	if res.ProcessedThroughIndex != 3 {
		t.Fatalf("expected ProcessedThroughIndex 3, got %d", res.ProcessedThroughIndex)
	}
}

func TestSplitForThreeTier_TenMessageScenario(t *testing.T) {
	// Ten 400-char messages (100 tokens each), 600-token budget, 100-token
	// summary slot: anchor = first 2 (200 tokens), recent budget = 300 so
	// 3 messages fill backward, middle 5 dropped.
	msgs := history(10, 400)

	res := memx.SplitForThreeTierMemory(msgs, threeTier(100))
	if !res.Truncated {
		t.Fatal("expected truncation")
	}
	if len(res.Anchor) != 2 || len(res.Dropped) != 5 || len(res.Recent) != 3 {
		t.Fatalf("expected 2/5/3, got %d/%d/%d",
			len(res.Anchor), len(res.Dropped), len(res.Recent))
	}
	if res.ProcessedThroughIndex != 9 {
		t.Fatalf("expected ProcessedThroughIndex 9, got %d", res.ProcessedThroughIndex)
	}

	// Partition invariant: concatenation reproduces chronological order.
	all := append(append(append([]chat.Message{}, res.Anchor...), res.Dropped...), res.Recent...)
	if len(all) != len(msgs) {
		t.Fatalf("tiers do not partition the input: %d != %d", len(all), len(msgs))
	}
	for i := range all {
		if all[i].Content != msgs[i].Content {
			t.Fatalf("chronological order broken at index %d", i)
		}
	}
}

func TestSplitForThreeTier_AnchorExceedsBudget(t *testing.T) {
	msgs := history(5, 2000) // anchor pair alone costs 1000 tokens

	res := memx.SplitForThreeTierMemory(msgs, threeTier(100))
	if !res.Truncated {
		t.Fatal("expected truncation")
	}
	if len(res.Anchor) != 0 {
		t.Fatal("anchor must be empty when it cannot be honored")
	}
	if len(res.Dropped) != len(msgs) {
		t.Fatalf("expected all %d messages dropped, got %d", len(msgs), len(res.Dropped))
	}
}

func TestSplitForThreeTier_ExhaustedBudget(t *testing.T) {
	cfg := memx.ThreeTierConfig{
		BudgetConfig:      memx.BudgetConfig{ContextWindow: 300, MaxOutputTokens: 200},
		SummarySlotTokens: 100,
	}

	res := memx.SplitForThreeTierMemory(history(4, 100), cfg)
	if !res.Truncated || len(res.Anchor) != 0 {
		t.Fatal("expected full truncation with empty anchor on exhausted budget")
	}
}

func TestSplitForThreeTier_SummarySlotSwallowsRecentBudget(t *testing.T) {
	// Anchor costs 200 of 600; a 500-token summary slot leaves the recent
	// tier a negative budget, so everything after the anchor is dropped.
	msgs := history(10, 400)

	res := memx.SplitForThreeTierMemory(msgs, threeTier(500))
	if !res.Truncated || len(res.Anchor) != 2 {
		t.Fatal("expected truncation with a kept anchor")
	}
	if len(res.Recent) != 0 {
		t.Fatalf("expected empty recent tier, got %d", len(res.Recent))
	}
	if len(res.Dropped) != 8 {
		t.Fatalf("expected 8 dropped, got %d", len(res.Dropped))
	}
}
