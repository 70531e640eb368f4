package services

import (
	"strings"
)

// TruncationMarker is appended whenever input text is cut down to the
// parser's maximum length, so the model knows the document continues.
const TruncationMarker = "... [truncated]"

// TruncateText bounds text to maxLen runes, appending the truncation
// marker when anything was cut. The marker is not counted against maxLen.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	return string(runes[:maxLen]) + TruncationMarker
}

// CleanText collapses blank lines and trims surrounding whitespace from
// each line, which keeps prompts compact without losing content.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
