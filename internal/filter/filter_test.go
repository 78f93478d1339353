package filter

import (
	"testing"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func testCatalog() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Title: "Naruto", Genre: []string{"Action"}, ReleaseYear: intPtr(2007), Rating: floatPtr(8.2)},
		{ID: 2, Title: "One Piece", Genre: []string{"Adventure"}, ReleaseYear: intPtr(1999), Rating: floatPtr(8.7)},
	}
}

func ids(items []catalog.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []int, b ...int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_NoActiveFilters(t *testing.T) {
	got := Apply(testCatalog(), Default())

	if !equalIDs(ids(got), 1, 2) {
		t.Errorf("expected [1 2], got %v", ids(got))
	}
}

func TestApply_Search(t *testing.T) {
	st := Default()
	st.Search = "naruto"

	got := Apply(testCatalog(), st)
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestApply_Genres(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Genre: []string{"Action", "Drama"}},
		{ID: 2, Genre: []string{"Romance"}},
		{ID: 3},
	}

	st := Default()
	st.Genres = []string{"Drama", "Romance"}

	// OR within the set: either tag qualifies
	got := Apply(items, st)
	if !equalIDs(ids(got), 1, 2) {
		t.Errorf("expected [1 2], got %v", ids(got))
	}
}

func TestApply_Status(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Status: "ongoing"},
		{ID: 2, Status: "completed"},
		{ID: 3},
	}

	st := Default()
	st.Status = "completed"
	got := Apply(items, st)
	if !equalIDs(ids(got), 2) {
		t.Errorf("expected [2], got %v", ids(got))
	}

	st.Status = Any
	got = Apply(items, st)
	if len(got) != 3 {
		t.Errorf("expected all items for status %q, got %v", Any, ids(got))
	}
}

func TestApply_DimensionTwoDExclusivity(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Format: []string{"2D"}},
		{ID: 2, Format: []string{"2D", "3D"}},
		{ID: 3, Format: []string{"3D"}},
	}

	st := Default()
	st.Dimension = "2D"
	got := Apply(items, st)
	// 2D means 2D-only: the dual-format item belongs to the 3D bucket
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected [1] for 2D, got %v", ids(got))
	}

	st.Dimension = "3D"
	got = Apply(items, st)
	if !equalIDs(ids(got), 2, 3) {
		t.Errorf("expected [2 3] for 3D, got %v", ids(got))
	}
}

func TestApply_YearRange(t *testing.T) {
	st := Default()
	st.Years = YearRange{Min: intPtr(1999), Max: intPtr(1999)}

	got := Apply(testCatalog(), st)
	if !equalIDs(ids(got), 2) {
		t.Errorf("expected [2], got %v", ids(got))
	}
}

func TestApply_YearRangeExcludesMissingYear(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, ReleaseYear: intPtr(2010)},
		{ID: 2}, // no year
	}

	st := Default()
	st.Years = YearRange{Min: intPtr(2000)}

	got := Apply(items, st)
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestApply_RatingRange(t *testing.T) {
	st := Default()
	st.Ratings = RatingRange{Min: 8.5, Max: RatingMax}

	got := Apply(testCatalog(), st)
	if !equalIDs(ids(got), 2) {
		t.Errorf("expected [2], got %v", ids(got))
	}
}

func TestApply_RatingRangeExcludesMissingRating(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Rating: floatPtr(5.0)},
		{ID: 2}, // no rating
	}

	st := Default()
	st.Ratings = RatingRange{Min: 1.0, Max: RatingMax}

	got := Apply(items, st)
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected [1], got %v", ids(got))
	}

	// Inactive default range keeps unrated items
	got = Apply(items, Default())
	if len(got) != 2 {
		t.Errorf("expected both items with inactive rating filter, got %v", ids(got))
	}
}

func TestApply_MalformedRangesMatchNothing(t *testing.T) {
	st := Default()
	st.Years = YearRange{Min: intPtr(2020), Max: intPtr(2000)}
	if got := Apply(testCatalog(), st); len(got) != 0 {
		t.Errorf("expected reversed year range to match nothing, got %v", ids(got))
	}

	st = Default()
	st.Ratings = RatingRange{Min: 9, Max: 1}
	if got := Apply(testCatalog(), st); len(got) != 0 {
		t.Errorf("expected reversed rating range to match nothing, got %v", ids(got))
	}
}

func TestApply_Conjunction(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "Naruto", Genre: []string{"Action"}, Status: "completed", ReleaseYear: intPtr(2007)},
		{ID: 2, Title: "Naruto Shippuden", Genre: []string{"Action"}, Status: "ongoing", ReleaseYear: intPtr(2007)},
		{ID: 3, Title: "One Piece", Genre: []string{"Action"}, Status: "completed", ReleaseYear: intPtr(1999)},
	}

	combined := Default()
	combined.Search = "naruto"
	combined.Genres = []string{"Action"}
	combined.Status = "completed"

	got := Apply(items, combined)
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected [1], got %v", ids(got))
	}

	// AND semantics: the combined result is a subset of each dimension
	// applied alone.
	for name, single := range map[string]State{
		"search only": {Status: Any, Dimension: Any, Ratings: RatingRange{RatingMin, RatingMax}, Search: "naruto"},
		"genre only":  {Status: Any, Dimension: Any, Ratings: RatingRange{RatingMin, RatingMax}, Genres: []string{"Action"}},
		"status only": {Status: "completed", Dimension: Any, Ratings: RatingRange{RatingMin, RatingMax}},
	} {
		singleIDs := ids(Apply(items, single))
		for _, id := range ids(got) {
			found := false
			for _, sid := range singleIDs {
				if sid == id {
					found = true
				}
			}
			if !found {
				t.Errorf("%s: combined result %d missing from single-dimension result %v", name, id, singleIDs)
			}
		}
	}
}

func TestApply_SortNewest(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, ReleaseYear: intPtr(1999)},
		{ID: 2}, // missing year sorts as 0
		{ID: 3, ReleaseYear: intPtr(2024)},
	}

	st := Default()
	st.Sort = SortNewest

	got := Apply(items, st)
	if !equalIDs(ids(got), 3, 1, 2) {
		t.Errorf("expected [3 1 2], got %v", ids(got))
	}
}

func TestApply_SortRating(t *testing.T) {
	st := Default()
	st.Sort = SortRatingDesc
	got := Apply(testCatalog(), st)
	if !equalIDs(ids(got), 2, 1) {
		t.Errorf("rating_desc: expected [2 1], got %v", ids(got))
	}

	st.Sort = SortRatingAsc
	got = Apply(testCatalog(), st)
	if !equalIDs(ids(got), 1, 2) {
		t.Errorf("rating_asc: expected [1 2], got %v", ids(got))
	}
}

func TestApply_SortTitle(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "One Piece"},
		{ID: 2, Title: "Bleach"},
		{ID: 3, Title: "Naruto"},
	}

	st := Default()
	st.Sort = SortTitleAsc
	got := Apply(items, st)
	if !equalIDs(ids(got), 2, 3, 1) {
		t.Errorf("title_asc: expected [2 3 1], got %v", ids(got))
	}

	st.Sort = SortTitleDesc
	got = Apply(items, st)
	if !equalIDs(ids(got), 1, 3, 2) {
		t.Errorf("title_desc: expected [1 3 2], got %v", ids(got))
	}
}

func TestApply_SortDefaultKeepsOrder(t *testing.T) {
	items := []catalog.Item{
		{ID: 3, Rating: floatPtr(2)},
		{ID: 1, Rating: floatPtr(9)},
		{ID: 2, Rating: floatPtr(5)},
	}

	got := Apply(items, Default())
	if !equalIDs(ids(got), 3, 1, 2) {
		t.Errorf("expected catalog order [3 1 2], got %v", ids(got))
	}
}

func TestApply_SortStableOnTies(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Rating: floatPtr(8.0)},
		{ID: 2, Rating: floatPtr(8.0)},
		{ID: 3, Rating: floatPtr(8.0)},
	}

	st := Default()
	st.Sort = SortRatingDesc
	got := Apply(items, st)
	if !equalIDs(ids(got), 1, 2, 3) {
		t.Errorf("expected stable tie order [1 2 3], got %v", ids(got))
	}
}

func TestApply_Deterministic(t *testing.T) {
	items := testCatalog()
	st := Default()
	st.Sort = SortRatingDesc

	first := ids(Apply(items, st))
	second := ids(Apply(items, st))
	if !equalIDs(first, second...) {
		t.Errorf("expected identical output across runs, got %v and %v", first, second)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := testCatalog()

	st := Default()
	st.Sort = SortRatingDesc
	Apply(items, st)

	if !equalIDs(ids(items), 1, 2) {
		t.Errorf("expected input order untouched, got %v", ids(items))
	}
}
