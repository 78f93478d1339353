// Package filter narrows and orders a catalog according to the active
// filter dimensions of a grid page.
package filter

import (
	"strings"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// Any is the sentinel for a dimension with no active filter.
const Any = "all"

// Default rating bounds; the rating filter is inactive at these values.
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// YearRange bounds the release-year filter, inclusive. Nil means
// unbounded on that side; both nil means the filter is inactive.
type YearRange struct {
	Min *int
	Max *int
}

func (r YearRange) active() bool {
	return r.Min != nil || r.Max != nil
}

// RatingRange bounds the rating filter, inclusive. The filter only
// activates when the bounds differ from [RatingMin, RatingMax].
type RatingRange struct {
	Min float64
	Max float64
}

func (r RatingRange) active() bool {
	return r.Min != RatingMin || r.Max != RatingMax
}

// State holds the active filter dimensions of one grid page. It is a
// plain value: the UI layer writes new states, Apply only reads them.
type State struct {
	Genres    []string // OR within the set, AND with the other filters
	Status    string   // Any matches every status
	Dimension string   // format tag; Any matches every format
	Years     YearRange
	Ratings   RatingRange
	Sort      Sort
	Search    string // already normalized (trimmed, lowercased)
}

// Default returns the state with every dimension inactive.
func Default() State {
	return State{
		Status:    Any,
		Dimension: Any,
		Ratings:   RatingRange{Min: RatingMin, Max: RatingMax},
		Sort:      SortDefault,
	}
}

// Apply filters items by every active dimension (conjunctively) and
// orders the survivors by st.Sort. It returns a new slice; the input
// is never reordered or mutated, so independent calls over the same
// catalog cannot interfere.
func Apply(items []catalog.Item, st State) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if matches(it, st) {
			out = append(out, it)
		}
	}
	sortItems(out, st.Sort)
	return out
}

func matches(it catalog.Item, st State) bool {
	if st.Search != "" && !strings.Contains(strings.ToLower(it.Title), st.Search) {
		return false
	}

	if len(st.Genres) > 0 && !intersects(it.Genre, st.Genres) {
		return false
	}

	if st.Status != "" && st.Status != Any && it.Status != st.Status {
		return false
	}

	if st.Dimension != "" && st.Dimension != Any {
		if !it.HasFormat(st.Dimension) {
			return false
		}
		// "2D" means 2D-only: an item tagged both 2D and 3D belongs to
		// the 3D bucket. The asymmetry is intentional.
		if st.Dimension == "2D" && it.HasFormat("3D") {
			return false
		}
	}

	if st.Years.active() {
		// A reversed range matches nothing rather than crashing or
		// silently swapping the bounds.
		if st.Years.Min != nil && st.Years.Max != nil && *st.Years.Min > *st.Years.Max {
			return false
		}
		if it.ReleaseYear == nil {
			return false
		}
		if st.Years.Min != nil && *it.ReleaseYear < *st.Years.Min {
			return false
		}
		if st.Years.Max != nil && *it.ReleaseYear > *st.Years.Max {
			return false
		}
	}

	if st.Ratings.active() {
		if st.Ratings.Min > st.Ratings.Max {
			return false
		}
		if it.Rating == nil {
			return false
		}
		if *it.Rating < st.Ratings.Min || *it.Rating > st.Ratings.Max {
			return false
		}
	}

	return true
}

// intersects reports whether the item's genre list shares a tag with
// the wanted set.
func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
