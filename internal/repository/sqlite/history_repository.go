package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/models"
	"github.com/deckwise/i18trainer/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a HistoryRepository backed by answer_history.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Insert(ctx context.Context, sessionKey string, e models.HistoryEntry) error {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting history entry: session=%s, rule_id=%d, correct=%t", sessionKey, e.RuleID, e.Correct)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO answer_history (session_key, rule_id, true_count, answer, correct, answered_at)
VALUES (?, ?, ?, ?, ?, ?)
`, sessionKey, e.RuleID, e.TrueCount, e.Answer, e.Correct, e.AnsweredAt)
	if err != nil {
		log.Error("failed to insert history entry: %v", err)
	}
	return err
}

func (r *historyRepository) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("listing history: session=%s, rule_id=%d", filter.SessionKey, filter.RuleID)

	query := sqlBuilder.
		Select("rule_id", "true_count", "answer", "correct", "answered_at").
		From("answer_history").
		OrderBy("answered_at DESC", "id DESC")
	query = applyFilter(query, filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build history query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.RuleID, &e.TrueCount, &e.Answer, &e.Correct, &e.AnsweredAt); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d history entries", len(entries))
	return entries, rows.Err()
}

func (r *historyRepository) Count(ctx context.Context, filter models.HistoryFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	query := sqlBuilder.Select("COUNT(*)").From("answer_history")
	query = applyFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build history count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count history: %v", err)
		return 0, err
	}
	return count, nil
}

func applyFilter(query squirrel.SelectBuilder, filter models.HistoryFilter) squirrel.SelectBuilder {
	if filter.SessionKey != "" {
		query = query.Where(squirrel.Eq{"session_key": filter.SessionKey})
	}
	if filter.RuleID != 0 {
		query = query.Where(squirrel.Eq{"rule_id": filter.RuleID})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"correct": *filter.Correct})
	}
	return query
}
