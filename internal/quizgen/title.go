package quizgen

import "strings"

// DefaultTitle is used when the summary yields nothing usable.
const DefaultTitle = "Quiz"

const maxTitleRunes = 80

// Title derives a quiz title from the first sentence of a summary,
// capped at 80 runes.
func Title(summary string) string {
	s := strings.Join(strings.Fields(summary), " ")
	s = strings.Trim(firstSentence(s), " .!?")
	if s == "" {
		return DefaultTitle
	}
	r := []rune(s)
	if len(r) > maxTitleRunes {
		s = strings.TrimSpace(string(r[:maxTitleRunes-3])) + "..."
	}
	return s
}

// firstSentence cuts s at the first terminator followed by a space or the
// end of the string, so decimals like 3.14 survive.
func firstSentence(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			if i+1 == len(s) || s[i+1] == ' ' {
				return s[:i]
			}
		}
	}
	return s
}
