package shared

import "strings"

// TokenizeSearch splits a free-text search string into tokens. Double-quoted
// substrings are preserved as a single token (without the quotes); everything
// else splits on whitespace. Each token becomes one case-insensitive partial
// match, combined with OR, so results need to satisfy any one token.
func TokenizeSearch(search string) []string {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range search {
		switch {
		case r == '"':
			if inQuotes {
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
			}
			inQuotes = !inQuotes
		case r == ' ' || r == '\t' || r == '\n':
			if inQuotes {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
