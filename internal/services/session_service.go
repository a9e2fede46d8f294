package services

import (
	"context"
	"sync"

	"github.com/deckwise/i18trainer/internal/engine"
	"github.com/deckwise/i18trainer/internal/errors"
	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/models"
	"github.com/deckwise/i18trainer/internal/repository"
	"github.com/deckwise/i18trainer/internal/worker"
)

// SessionService handles practice-session business logic: it owns the live
// engines, loads them from the store on first use, and persists after every
// mutation.
type SessionService interface {
	Generate(ctx context.Context, key string) (models.Scenario, error)
	Submit(ctx context.Context, key, action string) (models.GradingResult, error)
	Summary(ctx context.Context, key string) (models.Stats, error)
	WeakSpots(ctx context.Context, key string, n int) ([]models.WeakSpot, error)
	Config(ctx context.Context, key string) (models.SessionConfig, error)
	UpdateConfig(ctx context.Context, key string, patch models.ConfigPatch) (models.SessionConfig, error)
	Reset(ctx context.Context, key string) error
	History(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error)
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*engine.Session

	store        repository.SessionStore
	history      repository.HistoryRepository
	saves        *worker.Pool // nil = save synchronously
	historyLimit int
}

// NewSessionService creates a new SessionService. Pass a nil pool to save
// synchronously (tests do this).
func NewSessionService(store repository.SessionStore, history repository.HistoryRepository, saves *worker.Pool, historyLimit int) SessionService {
	return &sessionService{
		sessions:     make(map[string]*engine.Session),
		store:        store,
		history:      history,
		saves:        saves,
		historyLimit: historyLimit,
	}
}

// session returns the live engine for a key, loading its persisted record
// on first use. Callers must hold s.mu.
func (s *sessionService) session(ctx context.Context, key string) (*engine.Session, error) {
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	log := logger.FromContext(ctx)
	record, found, err := s.store.Get(ctx, key)
	if err != nil {
		log.Error("failed to load session record: %v", err)
		return nil, errors.NewInternalError(err)
	}

	opts := []engine.Option{engine.WithHistoryLimit(s.historyLimit)}
	if found {
		opts = append(opts, engine.WithState(repository.DecodeState(record)))
		log.Debug("session restored from store: key=%s", key)
	} else {
		log.Debug("new session: key=%s", key)
	}

	sess := engine.New(opts...)
	s.sessions[key] = sess
	return sess, nil
}

// persist writes the session record, via the save pool when configured.
// Saves are best-effort; a failed or dropped save only costs durability of
// the latest answer, never the live session.
func (s *sessionService) persist(ctx context.Context, key string, sess *engine.Session) {
	record, err := repository.EncodeState(sess.State())
	if err != nil {
		logger.FromContext(ctx).Error("failed to encode session state: %v", err)
		return
	}

	if s.saves == nil {
		if err := s.store.Set(ctx, key, record); err != nil {
			logger.FromContext(ctx).Error("failed to save session: %v", err)
		}
		return
	}
	s.saves.Submit(worker.Task{
		Name: "save-session",
		Run: func(taskCtx context.Context) error {
			return s.store.Set(taskCtx, key, record)
		},
	})
}

func (s *sessionService) Generate(ctx context.Context, key string) (models.Scenario, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return models.Scenario{}, err
	}
	scn := sess.GenerateScenario()
	log.Debug("scenario generated: rule=%q, true_count=%d, edge_case=%t", scn.Rule.Name, scn.TrueCount, scn.IsEdgeCase)
	return scn, nil
}

func (s *sessionService) Submit(ctx context.Context, key, action string) (models.GradingResult, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return models.GradingResult{}, err
	}

	result, err := sess.SubmitAnswer(action)
	if err != nil {
		return models.GradingResult{}, err
	}
	log.Info("answer graded: action=%q, correct=%t, score=%d, streak=%d", action, result.IsCorrect, result.Score, result.Streak)

	state := sess.State()
	if n := len(state.History); n > 0 {
		s.recordHistory(ctx, key, state.History[n-1])
	}
	s.persist(ctx, key, sess)
	return result, nil
}

// recordHistory mirrors the latest graded answer into the queryable history
// table, via the save pool when configured.
func (s *sessionService) recordHistory(ctx context.Context, key string, entry models.HistoryEntry) {
	if s.saves == nil {
		if err := s.history.Insert(ctx, key, entry); err != nil {
			logger.FromContext(ctx).Error("failed to record history: %v", err)
		}
		return
	}
	s.saves.Submit(worker.Task{
		Name: "record-history",
		Run: func(taskCtx context.Context) error {
			return s.history.Insert(taskCtx, key, entry)
		},
	})
}

func (s *sessionService) Summary(ctx context.Context, key string) (models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return models.Stats{}, err
	}
	return sess.Summary(), nil
}

func (s *sessionService) WeakSpots(ctx context.Context, key string, n int) ([]models.WeakSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return nil, err
	}
	return sess.TopWeakSpots(n), nil
}

func (s *sessionService) Config(ctx context.Context, key string) (models.SessionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return models.SessionConfig{}, err
	}
	return sess.Config(), nil
}

func (s *sessionService) UpdateConfig(ctx context.Context, key string, patch models.ConfigPatch) (models.SessionConfig, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return models.SessionConfig{}, err
	}
	if err := sess.SetConfig(patch); err != nil {
		return models.SessionConfig{}, err
	}
	log.Info("session config updated: key=%s", key)
	s.persist(ctx, key, sess)
	return sess.Config(), nil
}

func (s *sessionService) Reset(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, key)
	if err != nil {
		return err
	}
	sess.Reset()
	log.Info("session reset: key=%s", key)
	s.persist(ctx, key, sess)
	return nil
}

func (s *sessionService) History(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error) {
	entries, err := s.history.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
