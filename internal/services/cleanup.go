package services

import (
	"regexp"
	"strings"
)

var (
	// Keycap digits (1️⃣, 2️⃣, with or without the variation selector) and 🔟.
	keycapEmojiPattern = regexp.MustCompile(`(?:[0-9#*]\x{FE0F}?\x{20E3}|\x{1F51F})[ \t]*`)

	// Heading hashes and bullet markers at the start of a trimmed line.
	// "### 1. 구조" keeps its numbering: only the hashes go.
	lineMarkerPattern = regexp.MustCompile(`^(?:[#*-]+[ \t]*)+`)
)

// CleanContent strips markdown and emoji decoration from a model reply:
// bold delimiters, keycap emoji, heading hashes and leading bullet markers.
// Every line is trimmed and blank lines are kept for paragraph spacing.
// CleanContent(CleanContent(s)) == CleanContent(s).
func CleanContent(text string) string {
	text = removeDecorations(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripLineMarkers(line)
	}

	return strings.Join(lines, "\n")
}

// removeDecorations deletes "**" and keycap emoji. Deleting one can join
// the pieces of the other ("*1️⃣*"), so it repeats until nothing changes.
func removeDecorations(text string) string {
	for {
		next := strings.ReplaceAll(text, "**", "")
		next = keycapEmojiPattern.ReplaceAllString(next, "")
		if next == text {
			return next
		}
		text = next
	}
}

func stripLineMarkers(line string) string {
	for {
		next := strings.TrimSpace(line)
		next = lineMarkerPattern.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == line {
			return next
		}
		line = next
	}
}
