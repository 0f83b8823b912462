package match

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier for fuzzy comparison: CamelCase words,
// snake_case and kebab-case all collapse to one lowercase run, so
// "DisplayName", "display_name" and "displayName" compare equal.
func Normalize(s string) string {
	return strings.Join(Tokens(s), "")
}

// Tokens splits an identifier into lowercase words at separators, at
// lower-to-upper transitions and at the end of acronyms ("HTTPServer" is
// "http", "server").
func Tokens(s string) []string {
	var (
		out []string
		cur []rune
	)

	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			flush()
			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}

		cur = append(cur, r)
	}

	flush()

	return out
}
