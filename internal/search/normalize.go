package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Phở"
// folds to "pho" and matches unaccented queries.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize lowercases s, strips diacritics and trims surrounding
// whitespace. The same normalization is applied to titles, queries and
// every secondary field before comparison, so accented and unaccented
// text match each other. Idempotent.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the
		// raw string rather than dropping the item from matching.
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}
