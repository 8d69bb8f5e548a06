package llm

import "unicode/utf8"

const avgCharsPerToken = 3

// RoughEstimateTokens estimates the prompt size of messages from their rune
// counts. Each message counts for at least one token.
func RoughEstimateTokens(messages ...Message) int {
	total := 0
	for _, msg := range messages {
		total += max(utf8.RuneCountInString(msg.Content)/avgCharsPerToken, 1)
	}
	return total
}
