// Package storage persists the watchlist and playback preferences.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Data holds everything phimdex persists between runs.
type Data struct {
	Watchlist []Entry           `json:"watchlist"`
	Prefs     map[string]string `json:"prefs"`
}

// NewData creates an empty Data with initialized fields.
func NewData() *Data {
	return &Data{
		Watchlist: []Entry{},
		Prefs:     map[string]string{},
	}
}

// AddWatch appends an entry unless the item is already listed.
// Returns false for duplicates.
func (d *Data) AddWatch(e Entry) bool {
	for _, have := range d.Watchlist {
		if have.ItemID == e.ItemID {
			return false
		}
	}
	d.Watchlist = append(d.Watchlist, e)
	return true
}

// RemoveWatch deletes the entry for the given item id.
// Returns false when the item was not listed.
func (d *Data) RemoveWatch(itemID int) bool {
	for i, e := range d.Watchlist {
		if e.ItemID == itemID {
			d.Watchlist = append(d.Watchlist[:i], d.Watchlist[i+1:]...)
			return true
		}
	}
	return false
}

// HasWatch reports whether the item is on the watchlist.
func (d *Data) HasWatch(itemID int) bool {
	for _, e := range d.Watchlist {
		if e.ItemID == itemID {
			return true
		}
	}
	return false
}

// Storage defines the interface for persisting phimdex data.
type Storage interface {
	Load() (*Data, error)
	Save(data *Data) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the data from the JSON file.
// Returns empty data if the file doesn't exist.
func (s *JSONStorage) Load() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewData(), nil
		}
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	// Ensure fields are not nil
	if data.Watchlist == nil {
		data.Watchlist = []Entry{}
	}
	if data.Prefs == nil {
		data.Prefs = map[string]string{}
	}

	return &data, nil
}

// Save writes the data to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(data *Data) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, 0644)
}

// DefaultJSONPath returns the default data path: ~/.config/phimdex/phimdex.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "phimdex", "phimdex.json"), nil
}

// Open opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func Open() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultJSONPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
