package memx

import "github.com/Abraxas-365/convmem/pkg/chat"

// DefaultCharsPerToken is the default characters-per-token ratio. One token
// per four characters is a rough approximation, good enough for budget
// decisions but not for billing.
const DefaultCharsPerToken = 4

// EstimateTokens estimates the token count of a plain string using a
// characters-per-token ratio. Returns 0 for empty input or a non-positive
// ratio.
func EstimateTokens(text string, charsPerToken int) int {
	if text == "" || charsPerToken <= 0 {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// EstimateMessageTokens estimates the token count of a message's content.
// Multi-part content sums only text parts, each part measured independently;
// image parts contribute zero since their cost is provider-specific.
func EstimateMessageTokens(msg chat.Message, charsPerToken int) int {
	if !msg.IsMultimodal() {
		return EstimateTokens(msg.Content, charsPerToken)
	}
	total := 0
	for _, part := range msg.MultiContent {
		if part.Type == chat.ContentPartTypeText {
			total += EstimateTokens(part.Text, charsPerToken)
		}
	}
	return total
}

// EstimateTotalTokens estimates a total over an input string, an optional
// message list and an optional system message.
func EstimateTotalTokens(input string, messages []chat.Message, system string, charsPerToken int) int {
	total := EstimateTokens(input, charsPerToken)
	for _, msg := range messages {
		total += EstimateMessageTokens(msg, charsPerToken)
	}
	total += EstimateTokens(system, charsPerToken)
	return total
}
