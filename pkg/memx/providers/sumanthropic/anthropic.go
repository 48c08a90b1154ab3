package sumanthropic

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Abraxas-365/convmem/pkg/memx"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var _ memx.Summarizer = (*AnthropicSummarizer)(nil)

const systemPrompt = "You are a conversation summarizer. Produce a concise summary " +
	"of the conversation excerpt you are given. When an existing summary is provided, " +
	"fold the new messages into it and return a single updated summary. " +
	"Respond with the summary text only."

// AnthropicSummarizer implements memx.Summarizer using the Anthropic
// Messages API.
type AnthropicSummarizer struct {
	client    anthropic.Client
	apiKey    string
	model     string
	maxTokens int
}

// Option configures an AnthropicSummarizer.
type Option func(*AnthropicSummarizer)

// WithModel sets the model used for summarization.
func WithModel(model string) Option {
	return func(s *AnthropicSummarizer) { s.model = model }
}

// WithMaxTokens caps the summary completion length.
func WithMaxTokens(n int) Option {
	return func(s *AnthropicSummarizer) { s.maxTokens = n }
}

// NewAnthropicSummarizer creates a new Anthropic-backed summarizer.
func NewAnthropicSummarizer(apiKey string, opts ...Option) *AnthropicSummarizer {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	s := &AnthropicSummarizer{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		apiKey:    apiKey,
		model:     "claude-sonnet-4-20250514",
		maxTokens: 512,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize implements memx.Summarizer. An empty result with a nil error
// means no summary was produced.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, messagesText, existingSummary string, summaryContext map[string]any) (string, error) {
	if s.apiKey == "" {
		return "", errorRegistry.New(ErrMissingAPIKey)
	}
	if strings.TrimSpace(messagesText) == "" {
		return "", nil
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				buildUserPrompt(messagesText, existingSummary, summaryContext),
			)),
		},
	}

	message, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("model", s.model)
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return strings.TrimSpace(content), nil
}

// buildUserPrompt assembles the summarization request: existing summary
// first (for incremental continuation), then the opaque context payload,
// then the newly dropped messages.
func buildUserPrompt(messagesText, existingSummary string, summaryContext map[string]any) string {
	var b strings.Builder

	if existingSummary != "" {
		b.WriteString("Existing summary:\n")
		b.WriteString(existingSummary)
		b.WriteString("\n\n")
	}

	if len(summaryContext) > 0 {
		keys := make([]string, 0, len(summaryContext))
		for k := range summaryContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Additional context:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %v\n", k, summaryContext[k])
		}
		b.WriteString("\n")
	}

	b.WriteString("New messages:\n")
	b.WriteString(messagesText)
	return b.String()
}
