package pdftext

import (
	"strings"
)

// NormalizeText splits raw page text into cleansed lines: lowercased,
// asterisks stripped, tabs turned into spaces, whitespace runs
// collapsed, trimmed. Lines shorter than minLength are discarded.
func NormalizeText(text string, minLength int) []string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "*", "")

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(strings.ReplaceAll(raw, "\t", " ")), " ")
		if len(line) < minLength {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
