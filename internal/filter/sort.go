package filter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// Sort selects the total order applied after filtering.
type Sort string

const (
	SortDefault    Sort = "default" // keep filtered (catalog) order
	SortNewest     Sort = "newest"
	SortRatingDesc Sort = "rating_desc"
	SortRatingAsc  Sort = "rating_asc"
	SortTitleAsc   Sort = "title_asc"
	SortTitleDesc  Sort = "title_desc"
)

// ParseSort maps a sort token to a Sort, falling back to SortDefault
// for unknown tokens.
func ParseSort(token string) Sort {
	switch Sort(token) {
	case SortNewest, SortRatingDesc, SortRatingAsc, SortTitleAsc, SortTitleDesc:
		return Sort(token)
	default:
		return SortDefault
	}
}

// sortItems orders items in place. Every mode uses a stable sort so
// equal keys keep their filtered order and repeated runs agree.
func sortItems(items []catalog.Item, mode Sort) {
	switch mode {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return yearOrZero(items[i]) > yearOrZero(items[j])
		})
	case SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return ratingOrZero(items[i]) > ratingOrZero(items[j])
		})
	case SortRatingAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return ratingOrZero(items[i]) < ratingOrZero(items[j])
		})
	case SortTitleAsc:
		c := collate.New(language.Und)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) < 0
		})
	case SortTitleDesc:
		c := collate.New(language.Und)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) > 0
		})
	}
}

func yearOrZero(it catalog.Item) int {
	if it.ReleaseYear == nil {
		return 0
	}
	return *it.ReleaseYear
}

func ratingOrZero(it catalog.Item) float64 {
	if it.Rating == nil {
		return 0
	}
	return *it.Rating
}
