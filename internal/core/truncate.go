// ABOUTME: Length capping for generative replies before they are spoken
// ABOUTME: Prefers a sentence boundary, falls back to a hard cut with "..."
package core

import "strings"

// SentenceBoundaryRatio is how far into the cap a sentence end must be to be used as the cut point.
// Earlier boundaries would drop too much of the reply, so a hard cut is used instead.
const SentenceBoundaryRatio = 0.5

const ellipsis = "..."

// TruncateReply caps text at maxLen runes. maxLen <= 0 disables the cap.
func TruncateReply(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	head := runes[:maxLen]
	cut := -1
	for i := len(head) - 1; i >= 0; i-- {
		if isSentenceEnd(head[i]) {
			cut = i
			break
		}
	}
	if cut >= 0 && float64(cut) > float64(maxLen)*SentenceBoundaryRatio {
		return strings.TrimSpace(string(head[:cut+1]))
	}

	if maxLen <= len(ellipsis) {
		return string(head)
	}
	return strings.TrimSpace(string(runes[:maxLen-len(ellipsis)])) + ellipsis
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}
