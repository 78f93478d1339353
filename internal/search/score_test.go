package search

import (
	"testing"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// testYear pins freshness boosts so tests don't drift with the clock.
const testYear = 2025

func intPtr(v int) *int         { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestScore_TitleTiers(t *testing.T) {
	opts := Options{Year: testYear}

	tests := []struct {
		name  string
		title string
		query string
		want  int
	}{
		{"exact match", "Naruto", "naruto", 100},
		{"prefix match", "Naruto Shippuden", "naruto", 80},
		{"substring match", "Boruto: Naruto Next", "naruto", 60},
		{"word substring still hits contains tier", "The Last Samurai", "sam", 60},
		{"non-contiguous multiword query", "The Last Samurai", "the samurai", 0},
		{"no match", "One Piece", "naruto", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := catalog.Item{ID: 1, Title: tt.title}
			if got := Score(it, tt.query, opts); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, expected %d", tt.title, tt.query, got, tt.want)
			}
		})
	}
}

func TestScore_TiersAreExclusive(t *testing.T) {
	// An exact title match must not also collect prefix/contains/word
	// points for the same title.
	it := catalog.Item{ID: 1, Title: "Naruto"}
	if got := Score(it, "naruto", Options{Year: testYear}); got != 100 {
		t.Errorf("expected exactly 100 for exact title, got %d", got)
	}
}

func TestScore_SecondaryFields(t *testing.T) {
	opts := Options{Year: testYear}

	it := catalog.Item{
		ID:          1,
		Title:       "Mat Biec",
		Description: "A story about first love in Hue",
		Genre:       []string{"Romance", "Drama"},
		Cast:        catalog.StringList{"Tran Nghia"},
		Director:    catalog.StringList{"Victor Vu"},
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"description only", "first love", 10},
		{"genre only", "romance", 20},
		{"cast only", "nghia", 15},
		{"director only", "victor", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(it, tt.query, opts); got != tt.want {
				t.Errorf("Score(%q) = %d, expected %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestScore_SecondaryFieldsStack(t *testing.T) {
	it := catalog.Item{
		ID:    1,
		Title: "Dragon Quest",
		Genre: []string{"Dragon Fantasy"},
		Cast:  catalog.StringList{"Dragon Lee"},
	}

	// title contains (60) + genre (20) + cast (15)
	if got := Score(it, "dragon", Options{Year: testYear}); got != 95 {
		t.Errorf("expected 95, got %d", got)
	}
}

func TestScore_Badges(t *testing.T) {
	it := catalog.Item{ID: 1, Title: "Naruto", Hot: true, New: true, Trending: true}

	// exact 100 + hot 15 + trending 12 + new 10
	if got := Score(it, "naruto", Options{Year: testYear}); got != 137 {
		t.Errorf("expected 137, got %d", got)
	}
}

func TestScore_FreshnessBoosts(t *testing.T) {
	opts := Options{Year: testYear}

	tests := []struct {
		name string
		year int
		want int
	}{
		{"current year", 2025, 108},
		{"last year", 2024, 108},
		{"two years back", 2023, 104},
		{"three years back", 2022, 104},
		{"old", 2007, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := catalog.Item{ID: 1, Title: "Naruto", ReleaseYear: intPtr(tt.year)}
			if got := Score(it, "naruto", opts); got != tt.want {
				t.Errorf("year %d: expected %d, got %d", tt.year, tt.want, got)
			}
		})
	}
}

func TestScore_TabBoost(t *testing.T) {
	it := catalog.Item{ID: 1, Title: "Naruto", ItemType: catalog.TypeAnimeSeries}

	base := Score(it, "naruto", Options{Year: testYear})
	boosted := Score(it, "naruto", Options{Year: testYear, TabType: "anime"})

	if boosted != base+5 {
		t.Errorf("expected tab boost of 5, got %d vs %d", boosted, base)
	}

	other := Score(it, "naruto", Options{Year: testYear, TabType: "movies"})
	if other != base {
		t.Errorf("expected no boost for non-matching tab, got %d vs %d", other, base)
	}
}

func TestScore_AccentInsensitive(t *testing.T) {
	it := catalog.Item{ID: 1, Title: "Phở Đặc Biệt"}

	if got := Score(it, Normalize("pho"), Options{Year: testYear}); got != 80 {
		t.Errorf("expected prefix tier 80 for unaccented query, got %d", got)
	}
}

func TestScore_QueryDominance(t *testing.T) {
	// A query equal to the full title must outrank one matching only a
	// genre tag.
	it := catalog.Item{ID: 1, Title: "Naruto", Genre: []string{"Action"}}
	opts := Options{Year: testYear}

	exact := Score(it, "naruto", opts)
	genreOnly := Score(it, "action", opts)
	if exact <= genreOnly {
		t.Errorf("expected exact title score %d > genre score %d", exact, genreOnly)
	}
}

func TestScore_EmptyQuery(t *testing.T) {
	it := catalog.Item{ID: 1, Title: "Naruto", Hot: true}
	if got := Score(it, "", Options{Year: testYear}); got != 0 {
		t.Errorf("expected 0 for empty query, got %d", got)
	}
}

func TestScore_MissingFields(t *testing.T) {
	// An item with nothing but an id neither matches nor panics.
	if got := Score(catalog.Item{ID: 1}, "naruto", Options{Year: testYear}); got != 0 {
		t.Errorf("expected 0 for empty item, got %d", got)
	}
}
