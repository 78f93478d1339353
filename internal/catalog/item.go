package catalog

import "encoding/json"

// Type classifies a catalog entry.
type Type string

const (
	TypeMovies      Type = "movies"
	TypeSeries      Type = "series"
	TypeAnimeMovie  Type = "anime-movie"
	TypeAnimeSeries Type = "anime-series"
)

// Season holds per-season metadata for series entries.
type Season struct {
	Number   int `json:"number"`
	Episodes int `json:"episodes,omitempty"`
}

// Item is one streamable title record (movie, series, or anime entry).
// Optional numeric fields use pointers so that "absent" and "zero" stay
// distinguishable; filters and scoring treat absence as "does not match".
type Item struct {
	ID            int        `json:"id"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	Genre         []string   `json:"genre,omitempty"`
	ReleaseYear   *int       `json:"releaseYear,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	Cast          StringList `json:"cast,omitempty"`
	Director      StringList `json:"director,omitempty"`
	Status        string     `json:"status,omitempty"`
	Format        []string   `json:"format,omitempty"`
	ItemType      Type       `json:"itemType,omitempty"`
	Poster        string     `json:"poster,omitempty"`
	Seasons       []Season   `json:"seasons,omitempty"`
	SeasonCount   int        `json:"seasonCount,omitempty"`
	TotalEpisodes int        `json:"totalEpisodes,omitempty"`
	Hot           bool       `json:"hot,omitempty"`
	New           bool       `json:"new,omitempty"`
	Trending      bool       `json:"trending,omitempty"`
}

// StringList decodes a JSON value that the catalog files store either as
// a single string or as an array of strings (cast and director fields).
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = StringList{one}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// HasFormat reports whether the item's format list contains the tag.
func (it Item) HasFormat(tag string) bool {
	for _, f := range it.Format {
		if f == tag {
			return true
		}
	}
	return false
}

// ResolveType returns the item's type, inferring it when absent.
// An explicit itemType is authoritative. Without one, the heuristic
// checks the Anime format tag plus season/episode cardinality, then
// series-like cardinality, and finally falls back to movies. Items
// with no itemType and no cardinality data will be classified as
// movies even when they are not.
func ResolveType(it Item) Type {
	if it.ItemType != "" {
		return it.ItemType
	}

	if it.HasFormat("Anime") {
		if seriesLike(it) {
			return TypeAnimeSeries
		}
		return TypeAnimeMovie
	}

	if seriesLike(it) || it.HasFormat("Series") {
		return TypeSeries
	}

	return TypeMovies
}

// seriesLike reports whether the item's cardinality fields indicate a
// multi-episode title.
func seriesLike(it Item) bool {
	return it.SeasonCount > 1 || it.TotalEpisodes > 1 || len(it.Seasons) > 0
}
