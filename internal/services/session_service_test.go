package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/deckwise/i18trainer/internal/errors"
	"github.com/deckwise/i18trainer/internal/models"
	"github.com/deckwise/i18trainer/internal/repository"
	"github.com/deckwise/i18trainer/internal/repository/sqlite"
	"github.com/deckwise/i18trainer/internal/services"
	"github.com/deckwise/i18trainer/internal/testutil"
)

type serviceFixture struct {
	svc     services.SessionService
	store   repository.SessionStore
	history repository.HistoryRepository
}

// newFixture builds a service with synchronous saves against an in-memory
// database.
func newFixture(t *testing.T) serviceFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	store := sqlite.NewSessionStore(db.DB)
	history := sqlite.NewHistoryRepository(db.DB)
	return serviceFixture{
		svc:     services.NewSessionService(store, history, nil, 100),
		store:   store,
		history: history,
	}
}

// pinDrill forces deterministic generation for a session key.
func pinDrill(t *testing.T, svc services.SessionService, key string, ruleID, trueCount int) {
	t.Helper()
	mode := true
	lo, hi := trueCount, trueCount
	_, err := svc.UpdateConfig(context.Background(), key, models.ConfigPatch{
		CustomDrillMode:      &mode,
		CustomDrillRuleID:    &ruleID,
		CustomDrillRangeLow:  &lo,
		CustomDrillRangeHigh: &hi,
	})
	require.NoError(t, err)
}

func TestSessionService_GenerateAndSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pinDrill(t, f.svc, "alice", 2, 2)

	scn, err := f.svc.Generate(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, scn.Rule.ID)
	assert.Equal(t, "Stand", scn.CorrectAction)

	result, err := f.svc.Submit(ctx, "alice", "Stand")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 12, result.Score)
}

func TestSessionService_SubmitWithoutScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), "alice", "Hit")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNoActiveScenario, appErr.Code)
}

func TestSessionService_PersistsAcrossRestarts(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := sqlite.NewSessionStore(db.DB)
	history := sqlite.NewHistoryRepository(db.DB)
	ctx := context.Background()

	svc := services.NewSessionService(store, history, nil, 100)
	pinDrill(t, svc, "alice", 2, 2)
	_, err := svc.Generate(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "alice", "Stand")
	require.NoError(t, err)

	// A fresh service over the same store sees the saved session.
	restarted := services.NewSessionService(store, history, nil, 100)
	stats, err := restarted.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAnswered)
	assert.Equal(t, 1, stats.TotalCorrect)
	assert.Equal(t, 12, stats.Score)

	cfg, err := restarted.Config(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, cfg.CustomDrillMode)
}

func TestSessionService_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pinDrill(t, f.svc, "alice", 2, 2)
	_, err := f.svc.Generate(ctx, "alice")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "alice", "Stand")
	require.NoError(t, err)

	stats, err := f.svc.Summary(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAnswered)
}

func TestSessionService_RecordsHistoryRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pinDrill(t, f.svc, "carol", 14, 0)
	_, err := f.svc.Generate(ctx, "carol")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "carol", "Hit")
	require.NoError(t, err)

	entries, err := f.svc.History(ctx, models.HistoryFilter{SessionKey: "carol"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 14, entries[0].RuleID)
	assert.False(t, entries[0].Correct)
}

func TestSessionService_WeakSpots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pinDrill(t, f.svc, "alice", 14, 0)
	for i := 0; i < 3; i++ {
		_, err := f.svc.Generate(ctx, "alice")
		require.NoError(t, err)
		_, err = f.svc.Submit(ctx, "alice", "Hit")
		require.NoError(t, err)
	}

	spots, err := f.svc.WeakSpots(ctx, "alice", 5)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, 14, spots[0].RuleID)
	assert.Equal(t, 3, spots[0].Misses)
}

func TestSessionService_UpdateConfigRejectsUnknownRule(t *testing.T) {
	f := newFixture(t)

	bad := 404
	_, err := f.svc.UpdateConfig(context.Background(), "alice", models.ConfigPatch{CustomDrillRuleID: &bad})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidRuleID, appErr.Code)
}

func TestSessionService_Reset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pinDrill(t, f.svc, "alice", 2, 2)
	_, err := f.svc.Generate(ctx, "alice")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "alice", "Stand")
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx, "alice"))

	stats, err := f.svc.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAnswered)
	assert.Zero(t, stats.Score)

	cfg, err := f.svc.Config(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, cfg.CustomDrillMode, "reset leaves config alone")
}
