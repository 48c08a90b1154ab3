package memx_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/convmem/pkg/chat"
	"github.com/Abraxas-365/convmem/pkg/memx"
)

func TestEstimateTokens_CeilDivision(t *testing.T) {
	cases := []struct {
		text  string
		ratio int
		want  int
	}{
		{"", 4, 0},
		{"abcd", 4, 1},
		{"abcde", 4, 2},
		{"abc", 4, 1},
		{strings.Repeat("x", 1000), 4, 250},
		{"hello", 0, 0},
		{"hello", -1, 0},
	}

	for _, c := range cases {
		if got := memx.EstimateTokens(c.text, c.ratio); got != c.want {
			t.Errorf("EstimateTokens(%d chars, ratio %d) = %d, want %d",
				len(c.text), c.ratio, got, c.want)
		}
	}
}

func TestEstimateMessageTokens_PlainContent(t *testing.T) {
	msg := chat.NewUserMessage(strings.Repeat("x", 400))
	if got := memx.EstimateMessageTokens(msg, 4); got != 100 {
		t.Fatalf("expected 100 tokens, got %d", got)
	}
}

func TestEstimateMessageTokens_MultiPartSumsTextOnly(t *testing.T) {
	msg := chat.NewMultimodalUserMessage(
		chat.TextPart("abcde"), // 2 tokens on its own
		chat.ImagePart("https://example.com/cat.png"),
		chat.TextPart("abc"), // 1 token on its own
	)

	// Each text part is measured independently; the image contributes zero.
	if got := memx.EstimateMessageTokens(msg, 4); got != 3 {
		t.Fatalf("expected 3 tokens, got %d", got)
	}
}

func TestEstimateTotalTokens(t *testing.T) {
	msgs := []chat.Message{
		chat.NewUserMessage("abcd"),      // 1
		chat.NewAssistantMessage("abcd"), // 1
	}

	got := memx.EstimateTotalTokens("abcd", msgs, "abcdefgh", 4) // 1 + 2 + 2
	if got != 5 {
		t.Fatalf("expected 5 tokens, got %d", got)
	}
}

func TestEstimateTotalTokens_EmptyInputs(t *testing.T) {
	if got := memx.EstimateTotalTokens("", nil, "", 4); got != 0 {
		t.Fatalf("expected 0 tokens, got %d", got)
	}
}
