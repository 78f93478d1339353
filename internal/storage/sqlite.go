package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas for durability and concurrent readers
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS watchlist (
			id TEXT PRIMARY KEY NOT NULL,
			item_id INTEGER NOT NULL,
			item_type TEXT NOT NULL,
			title TEXT NOT NULL,
			added_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_watchlist_item_id ON watchlist(item_id);

		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the data from the SQLite database.
func (s *SQLiteStorage) Load() (*Data, error) {
	data := NewData()

	rows, err := s.db.Query(`
		SELECT id, item_id, item_type, title, added_at
		FROM watchlist
		ORDER BY added_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		var itemType, addedAtStr string

		if err := rows.Scan(&e.ID, &e.ItemID, &itemType, &e.Title, &addedAtStr); err != nil {
			return nil, err
		}

		e.Type = catalog.Type(itemType)
		if t, err := time.Parse(time.RFC3339, addedAtStr); err == nil {
			e.AddedAt = t
		}

		data.Watchlist = append(data.Watchlist, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prefRows, err := s.db.Query("SELECT key, value FROM prefs")
	if err != nil {
		return nil, err
	}
	defer prefRows.Close()

	for prefRows.Next() {
		var key, value string
		if err := prefRows.Scan(&key, &value); err != nil {
			return nil, err
		}
		data.Prefs[key] = value
	}
	if err := prefRows.Err(); err != nil {
		return nil, err
	}

	return data, nil
}

// Save writes the data to the SQLite database, replacing the previous
// contents in one transaction.
func (s *SQLiteStorage) Save(data *Data) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM watchlist"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM prefs"); err != nil {
		return err
	}

	for _, e := range data.Watchlist {
		_, err := tx.Exec(`
			INSERT INTO watchlist (id, item_id, item_type, title, added_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.ID, e.ItemID, string(e.Type), e.Title, e.AddedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	for key, value := range data.Prefs {
		if _, err := tx.Exec("INSERT INTO prefs (key, value) VALUES (?, ?)", key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default database path: ~/.config/phimdex/phimdex.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "phimdex", "phimdex.db"), nil
}
