package catalog

import "github.com/sahilm/fuzzy"

// SuggestGenre resolves a user-typed genre against the known tags using
// fuzzy matching. It returns the best match and whether one was found.
// An exact (case-preserving) hit short-circuits the fuzzy pass.
func SuggestGenre(known []string, input string) (string, bool) {
	if input == "" {
		return "", false
	}

	for _, g := range known {
		if g == input {
			return g, true
		}
	}

	matches := fuzzy.Find(input, known)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
