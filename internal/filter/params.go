package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Xuni-Dizan/phimdex/internal/search"
)

// URL query parameters recognized by grid pages. A parameter is absent
// from a serialized URL whenever its dimension sits at the default, so
// shared links stay minimal.
const (
	paramGenres    = "genres"
	paramMinYear   = "minYear"
	paramMaxYear   = "maxYear"
	paramMinRating = "minRating"
	paramMaxRating = "maxRating"
	paramSort      = "sort"
	paramSearch    = "search"
	paramStatus    = "status"
	paramDimension = "dimension"
)

// ParseQuery builds a State from URL query parameters. Unknown or
// malformed values fall back to the dimension's default.
func ParseQuery(v url.Values) State {
	st := Default()

	if raw := v.Get(paramGenres); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				st.Genres = append(st.Genres, g)
			}
		}
	}

	if s := v.Get(paramStatus); s != "" {
		st.Status = s
	}
	if d := v.Get(paramDimension); d != "" {
		st.Dimension = d
	}

	if y, err := strconv.Atoi(v.Get(paramMinYear)); err == nil {
		st.Years.Min = &y
	}
	if y, err := strconv.Atoi(v.Get(paramMaxYear)); err == nil {
		st.Years.Max = &y
	}

	if r, err := strconv.ParseFloat(v.Get(paramMinRating), 64); err == nil {
		st.Ratings.Min = r
	}
	if r, err := strconv.ParseFloat(v.Get(paramMaxRating), 64); err == nil {
		st.Ratings.Max = r
	}

	st.Sort = ParseSort(v.Get(paramSort))

	if q := v.Get(paramSearch); q != "" {
		st.Search = search.Normalize(q)
	}

	return st
}

// ParseQueryString is ParseQuery over a raw query string
// ("genres=Action,Drama&minYear=2000").
func ParseQueryString(qs string) (State, error) {
	v, err := url.ParseQuery(qs)
	if err != nil {
		return Default(), err
	}
	return ParseQuery(v), nil
}

// Query serializes the state back to URL parameters, omitting every
// dimension that equals its default.
func (st State) Query() url.Values {
	v := url.Values{}

	if len(st.Genres) > 0 {
		v.Set(paramGenres, strings.Join(st.Genres, ","))
	}
	if st.Status != "" && st.Status != Any {
		v.Set(paramStatus, st.Status)
	}
	if st.Dimension != "" && st.Dimension != Any {
		v.Set(paramDimension, st.Dimension)
	}
	if st.Years.Min != nil {
		v.Set(paramMinYear, strconv.Itoa(*st.Years.Min))
	}
	if st.Years.Max != nil {
		v.Set(paramMaxYear, strconv.Itoa(*st.Years.Max))
	}
	if st.Ratings.Min != RatingMin {
		v.Set(paramMinRating, strconv.FormatFloat(st.Ratings.Min, 'f', 1, 64))
	}
	if st.Ratings.Max != RatingMax {
		v.Set(paramMaxRating, strconv.FormatFloat(st.Ratings.Max, 'f', 1, 64))
	}
	if st.Sort != SortDefault && st.Sort != "" {
		v.Set(paramSort, string(st.Sort))
	}
	if st.Search != "" {
		v.Set(paramSearch, st.Search)
	}

	return v
}
