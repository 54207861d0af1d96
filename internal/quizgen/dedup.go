package quizgen

import "strings"

// questionSet remembers accepted question texts, ignoring case and
// spacing differences.
type questionSet map[string]struct{}

// add records text and reports whether it was new.
func (s questionSet) add(text string) bool {
	key := normalize(text)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

// normalize folds case and collapses whitespace for comparisons.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
