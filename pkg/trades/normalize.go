package trades

import "strings"

// Normalize maps a raw trade token to its canonical name. Alias lookup is
// case-insensitive; unknown tokens fall back to title-casing the trimmed
// original. Always returns a string, never fails.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if canonical, ok := TradeAliases[normalized]; ok {
		return canonical
	}

	return titleCase(strings.TrimSpace(raw))
}

// titleCase capitalizes the first letter of each space-separated word and
// lower-cases the rest, matching Python's str.title for ASCII input.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
