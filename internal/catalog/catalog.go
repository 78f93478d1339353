// Package catalog defines the title records the rest of phimdex works
// on and loads them from the site's static JSON files.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile parses one catalog JSON file (a flat array of items).
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// LoadDir loads every *.json file in dir and concatenates the items.
// Files are read in name order so the combined catalog order is stable.
func LoadDir(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var items []Item
	for _, name := range names {
		part, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		items = append(items, part...)
	}
	return items, nil
}

// ByID finds an item by id, returns nil if not found.
func ByID(items []Item, id int) *Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// Genres returns the distinct genre tags across the catalog, sorted.
func Genres(items []Item) []string {
	seen := make(map[string]bool)
	for _, it := range items {
		for _, g := range it.Genre {
			seen[g] = true
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// YearBounds returns the minimum and maximum release year across the
// catalog. ok is false when no item carries a year.
func YearBounds(items []Item) (min, max int, ok bool) {
	for _, it := range items {
		if it.ReleaseYear == nil {
			continue
		}
		y := *it.ReleaseYear
		if !ok {
			min, max, ok = y, y, true
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max, ok
}
