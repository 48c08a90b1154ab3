package sumopenai

import (
	"context"
	"os"
	"strings"

	"github.com/Abraxas-365/convmem/pkg/memx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var _ memx.Summarizer = (*OpenAISummarizer)(nil)

const systemPrompt = "You are a conversation summarizer. Produce a concise summary " +
	"of the conversation excerpt you are given. When an existing summary is provided, " +
	"fold the new messages into it and return a single updated summary. " +
	"Respond with the summary text only."

// OpenAISummarizer implements memx.Summarizer using OpenAI chat completions.
type OpenAISummarizer struct {
	client    openai.Client
	apiKey    string
	model     string
	maxTokens int
}

// Option configures an OpenAISummarizer.
type Option func(*OpenAISummarizer)

// WithModel sets the model used for summarization.
func WithModel(model string) Option {
	return func(s *OpenAISummarizer) { s.model = model }
}

// WithMaxTokens caps the summary completion length.
func WithMaxTokens(n int) Option {
	return func(s *OpenAISummarizer) { s.maxTokens = n }
}

// NewOpenAISummarizer creates a new OpenAI-backed summarizer.
func NewOpenAISummarizer(apiKey string, opts ...Option) *OpenAISummarizer {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	s := &OpenAISummarizer{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		apiKey:    apiKey,
		model:     "gpt-4o-mini",
		maxTokens: 512,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize implements memx.Summarizer. An empty result with a nil error
// means no summary was produced.
func (s *OpenAISummarizer) Summarize(ctx context.Context, messagesText, existingSummary string, summaryContext map[string]any) (string, error) {
	if s.apiKey == "" {
		return "", errorRegistry.New(ErrMissingAPIKey)
	}
	if strings.TrimSpace(messagesText) == "" {
		return "", nil
	}

	params := openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(messagesText, existingSummary, summaryContext)),
		},
	}
	if s.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(s.maxTokens))
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("model", s.model)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
