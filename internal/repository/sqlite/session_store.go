package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/repository"
)

type sessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a SessionStore backed by the session_records table.
func NewSessionStore(db *sql.DB) repository.SessionStore {
	return &sessionStore{db: db}
}

func (s *sessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("session_store")
	log.Debug("loading session record: key=%s", key)

	var record []byte
	err := s.db.QueryRowContext(ctx, `
SELECT record FROM session_records WHERE key = ?
`, key).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no session record: key=%s", key)
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to load session record: %v", err)
		return nil, false, err
	}
	return record, true, nil
}

func (s *sessionStore) Set(ctx context.Context, key string, record []byte) error {
	log := logger.FromContext(ctx).WithPrefix("session_store")
	log.Debug("saving session record: key=%s, size=%d", key, len(record))

	_, err := s.db.ExecContext(ctx, `
INSERT INTO session_records (key, record, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = CURRENT_TIMESTAMP
`, key, record)
	if err != nil {
		log.Error("failed to save session record: %v", err)
	}
	return err
}

func (s *sessionStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("session_store")
	log.Debug("deleting session record: key=%s", key)

	_, err := s.db.ExecContext(ctx, `DELETE FROM session_records WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to delete session record: %v", err)
	}
	return err
}
