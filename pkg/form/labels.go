package form

import (
	"strings"
	"unicode"
)

// Labeler renders a field name as a display label.
type Labeler func(name string) string

// DefaultLabeler turns a field name into a title-cased label. Underscores,
// dashes and whitespace separate words, as do camelCase and letter/digit
// boundaries: "input_dir" becomes "Input Dir", "maxRetries2" "Max Retries 2".
func DefaultLabeler(name string) string {
	words := strings.FieldsFunc(strings.TrimLeft(name, "-"), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var parts []string
	for _, word := range words {
		for _, piece := range splitBoundaries(word) {
			parts = append(parts, capitalize(piece))
		}
	}
	return strings.Join(parts, " ")
}

func splitBoundaries(word string) []string {
	runes := []rune(word)
	var (
		out   []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		split := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if split {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
