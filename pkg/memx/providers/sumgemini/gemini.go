package sumgemini

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Abraxas-365/convmem/pkg/memx"
	"google.golang.org/genai"
)

var _ memx.Summarizer = (*GeminiSummarizer)(nil)

const systemPrompt = "You are a conversation summarizer. Produce a concise summary " +
	"of the conversation excerpt you are given. When an existing summary is provided, " +
	"fold the new messages into it and return a single updated summary. " +
	"Respond with the summary text only."

// GeminiSummarizer implements memx.Summarizer using Google Gemini.
type GeminiSummarizer struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// Option configures a GeminiSummarizer.
type Option func(*GeminiSummarizer)

// WithModel sets the model used for summarization.
func WithModel(model string) Option {
	return func(s *GeminiSummarizer) { s.model = model }
}

// WithMaxTokens caps the summary completion length.
func WithMaxTokens(n int) Option {
	return func(s *GeminiSummarizer) { s.maxTokens = n }
}

// NewGeminiSummarizer creates a new Gemini-backed summarizer.
func NewGeminiSummarizer(ctx context.Context, apiKey string, opts ...Option) (*GeminiSummarizer, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrClient, err)
	}

	s := &GeminiSummarizer{
		client:    client,
		model:     "gemini-2.0-flash",
		maxTokens: 512,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Summarize implements memx.Summarizer. An empty result with a nil error
// means no summary was produced.
func (s *GeminiSummarizer) Summarize(ctx context.Context, messagesText, existingSummary string, summaryContext map[string]any) (string, error) {
	if strings.TrimSpace(messagesText) == "" {
		return "", nil
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
		},
	}
	if s.maxTokens > 0 {
		config.MaxOutputTokens = int32(s.maxTokens)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{genai.NewPartFromText(
			buildUserPrompt(messagesText, existingSummary, summaryContext),
		)},
	}}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("model", s.model)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", nil
	}

	var content string
	for _, part := range result.Candidates[0].Content.Parts {
		content += part.Text
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
