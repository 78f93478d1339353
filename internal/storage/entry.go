package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// Entry is one watchlist record. The id is local to this installation;
// ItemID references the catalog.
type Entry struct {
	ID      string       `json:"id"`
	ItemID  int          `json:"itemId"`
	Type    catalog.Type `json:"type"`
	Title   string       `json:"title"`
	AddedAt time.Time    `json:"addedAt"`
}

// NewEntry creates a watchlist entry for a catalog item with a
// generated UUID and the current timestamp.
func NewEntry(it catalog.Item) Entry {
	return Entry{
		ID:      uuid.New().String(),
		ItemID:  it.ID,
		Type:    catalog.ResolveType(it),
		Title:   it.Title,
		AddedAt: time.Now(),
	}
}
