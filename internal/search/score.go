package search

import (
	"strings"
	"time"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// Title tiers are mutually exclusive; the word-level case is the only
// additive one. Secondary-field and badge boosts stack on top.
const (
	scoreTitleExact    = 100
	scoreTitlePrefix   = 80
	scoreTitleContains = 60
	scoreWordPrefix    = 30
	scoreWordContains  = 15

	scoreDescription = 10
	scoreGenre       = 20
	scoreCast        = 15
	scoreDirector    = 20

	scoreHot      = 15
	scoreTrending = 12
	scoreNew      = 10

	scoreRecentYear = 8
	scoreNearYear   = 4

	scoreTabMatch = 5
)

// Options tunes a Search call.
type Options struct {
	// MaxResults truncates the ranked list when > 0. The suggestion
	// dropdown conventionally asks for 7.
	MaxResults int

	// TabType is the page context ("movies", "series", "anime"); items
	// whose resolved type contains it get a small boost.
	TabType string

	// Year is the reference year for freshness boosts. Zero means the
	// current year; tests pin it for determinism.
	Year int
}

func (o Options) referenceYear() int {
	if o.Year != 0 {
		return o.Year
	}
	return time.Now().Year()
}

// Score computes the relevance of an item against a normalized query.
// Pure and deterministic for a fixed Options.Year. The query must
// already have gone through Normalize; callers go through Search,
// which does that.
func Score(it catalog.Item, query string, opts Options) int {
	if query == "" {
		return 0
	}

	score := 0
	title := Normalize(it.Title)

	switch {
	case title == query:
		score += scoreTitleExact
	case strings.HasPrefix(title, query):
		score += scoreTitlePrefix
	case strings.Contains(title, query):
		score += scoreTitleContains
	default:
		for _, word := range strings.Fields(title) {
			if strings.HasPrefix(word, query) {
				score += scoreWordPrefix
			} else if strings.Contains(word, query) {
				score += scoreWordContains
			}
		}
	}

	if it.Description != "" && strings.Contains(Normalize(it.Description), query) {
		score += scoreDescription
	}
	if anyContains(it.Genre, query) {
		score += scoreGenre
	}
	if anyContains(it.Cast, query) {
		score += scoreCast
	}
	if anyContains(it.Director, query) {
		score += scoreDirector
	}

	if it.Hot {
		score += scoreHot
	}
	if it.Trending {
		score += scoreTrending
	}
	if it.New {
		score += scoreNew
	}

	if it.ReleaseYear != nil {
		year := opts.referenceYear()
		switch {
		case *it.ReleaseYear >= year-1:
			score += scoreRecentYear
		case *it.ReleaseYear >= year-3:
			score += scoreNearYear
		}
	}

	if opts.TabType != "" && strings.Contains(string(catalog.ResolveType(it)), opts.TabType) {
		score += scoreTabMatch
	}

	return score
}

// anyContains reports whether any normalized value contains the query.
func anyContains(values []string, query string) bool {
	for _, v := range values {
		if strings.Contains(Normalize(v), query) {
			return true
		}
	}
	return false
}
