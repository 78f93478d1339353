package search

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// PlaceholderPoster is used when an item has no poster URL.
const PlaceholderPoster = "assets/images/placeholder.jpg"

// Suggestion is the display record for one row of the live-search
// dropdown. It is plain data; rendering stays with the caller.
type Suggestion struct {
	ID        int
	TitleHTML string // original casing, matches wrapped in a span
	Poster    string
	Year      string // "N/A" when unknown
	TypeLabel string
	TypeIcon  string
	Rating    string // one decimal, empty when unknown
	Hot       bool
	New       bool
	Trending  bool
	DetailURL string
}

// Suggest formats ranked results for the dropdown. basePrefix is the
// relative prefix back to the site root, see BasePrefix.
func Suggest(results []Result, rawQuery, basePrefix string) []Suggestion {
	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		it := r.Item

		year := "N/A"
		if it.ReleaseYear != nil {
			year = strconv.Itoa(*it.ReleaseYear)
		}

		rating := ""
		if it.Rating != nil {
			rating = strconv.FormatFloat(*it.Rating, 'f', 1, 64)
		}

		poster := it.Poster
		if poster == "" {
			poster = basePrefix + PlaceholderPoster
		}

		label, icon := TypeBadge(r.Type)

		suggestions[i] = Suggestion{
			ID:        it.ID,
			TitleHTML: Highlight(it.Title, strings.TrimSpace(rawQuery)),
			Poster:    poster,
			Year:      year,
			TypeLabel: label,
			TypeIcon:  icon,
			Rating:    rating,
			Hot:       it.Hot,
			New:       it.New,
			Trending:  it.Trending,
			DetailURL: DetailURL(it.ID, r.Type, basePrefix),
		}
	}
	return suggestions
}

// TypeBadge maps a resolved type to its dropdown label and icon key.
func TypeBadge(t catalog.Type) (label, icon string) {
	switch t {
	case catalog.TypeAnimeMovie:
		return "Anime Movie", "star"
	case catalog.TypeAnimeSeries:
		return "Anime Series", "star"
	case catalog.TypeSeries:
		return "Series", "tv"
	default:
		return "Movie", "film"
	}
}

// DetailURL builds the detail-page link for an item. Anime types share
// one route, series another, everything else goes to the movie page.
func DetailURL(id int, t catalog.Type, basePrefix string) string {
	var route string
	switch t {
	case catalog.TypeAnimeMovie, catalog.TypeAnimeSeries:
		route = "pages/anime-details.html"
	case catalog.TypeSeries:
		route = "pages/series-details.html"
	default:
		route = "pages/movie-details.html"
	}
	return fmt.Sprintf("%s%s?id=%d", basePrefix, route, id)
}

// BasePrefix derives the relative prefix back to the site root from a
// page path: one "../" per path segment after the "pages" marker
// segment, empty when the path is not under pages/.
func BasePrefix(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "pages" {
			continue
		}
		depth := 0
		for _, rest := range segments[i+1:] {
			if rest != "" {
				depth++
			}
		}
		return strings.Repeat("../", depth)
	}
	return ""
}

// Highlight wraps every case-insensitive occurrence of term in text
// with a highlight span, preserving the original casing. Both inputs
// are HTML-escaped on the way out.
func Highlight(text, term string) string {
	if text == "" || term == "" {
		return html.EscapeString(text)
	}

	textRunes := []rune(text)
	lowerText := lowerRunes(textRunes)
	lowerTerm := lowerRunes([]rune(term))
	if len(lowerTerm) > len(lowerText) {
		return html.EscapeString(text)
	}

	var b strings.Builder
	i := 0
	for i <= len(textRunes)-len(lowerTerm) {
		if !runesEqual(lowerText[i:i+len(lowerTerm)], lowerTerm) {
			b.WriteString(html.EscapeString(string(textRunes[i])))
			i++
			continue
		}
		match := string(textRunes[i : i+len(lowerTerm)])
		b.WriteString(`<span class="highlight">`)
		b.WriteString(html.EscapeString(match))
		b.WriteString(`</span>`)
		i += len(lowerTerm)
	}
	b.WriteString(html.EscapeString(string(textRunes[i:])))
	return b.String()
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
