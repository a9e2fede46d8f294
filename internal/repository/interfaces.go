package repository

import (
	"context"

	"github.com/deckwise/i18trainer/internal/models"
)

// SessionStore is the key-value store for persisted session records. The
// record is opaque here; its shape is defined by the codec in this package.
type SessionStore interface {
	// Get returns the record for a key, or ok=false when absent.
	Get(ctx context.Context, key string) (record []byte, ok bool, err error)
	// Set writes the record for a key, replacing any previous one.
	Set(ctx context.Context, key string, record []byte) error
	// Delete removes the record for a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// HistoryRepository stores graded answers as queryable rows for the stats
// view, alongside the bounded history kept inside the session record.
type HistoryRepository interface {
	Insert(ctx context.Context, sessionKey string, entry models.HistoryEntry) error
	List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error)
	Count(ctx context.Context, filter models.HistoryFilter) (int, error)
}
