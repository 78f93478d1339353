// Package search ranks catalog items against free-text queries and
// formats the ranked results for the live-search suggestion dropdown.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// MinQueryLen is the shortest query (in runes, after trimming) that
// triggers a search. Shorter queries yield no results, not an error.
const MinQueryLen = 2

// Result pairs a catalog item with its relevance score and resolved
// type. Results live only for the duration of one search invocation.
type Result struct {
	Item  catalog.Item
	Score int
	Type  catalog.Type
}

// Search scores every item against rawQuery and returns the matches
// ranked best-first. Ties keep their relative catalog order, so output
// is deterministic for identical inputs. The input slice is never
// reordered or mutated.
func Search(items []catalog.Item, rawQuery string, opts Options) []Result {
	if utf8.RuneCountInString(strings.TrimSpace(rawQuery)) < MinQueryLen {
		return nil
	}

	query := Normalize(rawQuery)

	var results []Result
	for _, it := range items {
		s := Score(it, query, opts)
		if s <= 0 {
			continue
		}
		results = append(results, Result{
			Item:  it,
			Score: s,
			Type:  catalog.ResolveType(it),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}
