package domain

import "strings"

// ParseWords splits user input on commas and newlines into lookup words.
// Tokens are trimmed; blank tokens are dropped. Order and duplicates are kept.
func ParseWords(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		words = append(words, f)
	}
	return words
}
