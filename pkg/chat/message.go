package chat

import "strings"

// Role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ContentPartType represents the type of a content part
type ContentPartType string

const (
	ContentPartTypeText     ContentPartType = "text"
	ContentPartTypeImageURL ContentPartType = "image_url"
)

// ImageURL references an image by URL or base64 data URI
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart represents one part of a multimodal message
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *ImageURL       `json:"image_url,omitempty"`
}

// TextPart creates a text content part
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartTypeText, Text: text}
}

// ImagePart creates an image content part from a URL (or base64 data URI)
func ImagePart(url string) ContentPart {
	return ContentPart{Type: ContentPartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// FunctionCall represents a function call in a message
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall represents a tool call issued by the assistant
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// Message represents a chat message. Messages are treated as immutable by the
// memory layer: they are referenced, sliced and recombined, never mutated.
type Message struct {
	Role         string         `json:"role"`
	Content      string         `json:"content,omitempty"`
	MultiContent []ContentPart  `json:"multi_content,omitempty"` // Multimodal content parts; takes precedence over Content
	Name         string         `json:"name,omitempty"`
	ToolCalls    []ToolCall     `json:"tool_calls,omitempty"`
	ToolCallID   string         `json:"tool_call_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// IsMultimodal returns true if the message contains multimodal content parts
func (m Message) IsMultimodal() bool {
	return len(m.MultiContent) > 0
}

// TextContent returns the text content of the message, extracting from
// MultiContent parts if necessary
func (m Message) TextContent() string {
	if !m.IsMultimodal() {
		return m.Content
	}
	var parts []string
	for _, p := range m.MultiContent {
		if p.Type == ContentPartTypeText {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// NewSystemMessage creates a new system message
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewMultimodalUserMessage creates a user message with multimodal content parts
func NewMultimodalUserMessage(parts ...ContentPart) Message {
	return Message{Role: RoleUser, MultiContent: parts}
}

// NewAssistantMessage creates a new assistant message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a new tool message
func NewToolMessage(toolCallID string, content string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, Content: content}
}
