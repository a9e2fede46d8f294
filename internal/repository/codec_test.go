package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwise/i18trainer/internal/models"
	"github.com/deckwise/i18trainer/internal/repository"
)

func TestDecodeState_EmptyRecord(t *testing.T) {
	state := repository.DecodeState(nil)
	assert.Equal(t, models.DefaultSessionState(), state)
}

func TestDecodeState_MalformedRecord(t *testing.T) {
	state := repository.DecodeState([]byte(`{not json`))
	assert.Equal(t, models.DefaultSessionState(), state)
}

func TestDecodeState_MissingFieldsFallBackIndividually(t *testing.T) {
	state := repository.DecodeState([]byte(`{"score": 120, "best_streak": 7}`))

	assert.Equal(t, 120, state.Score)
	assert.Equal(t, 7, state.BestStreak)
	assert.Zero(t, state.TotalAnswered)
	assert.Equal(t, models.DefaultConfig(), state.Config, "absent config keeps defaults")
	assert.NotNil(t, state.WeakSpots)
}

func TestDecodeState_MalformedFieldIsIgnored(t *testing.T) {
	state := repository.DecodeState([]byte(`{"score": "a lot", "total_answered": 9}`))

	assert.Zero(t, state.Score, "wrong-typed field falls back to default")
	assert.Equal(t, 9, state.TotalAnswered)
}

func TestDecodeState_PartialConfig(t *testing.T) {
	state := repository.DecodeState([]byte(`{"config": {"custom_drill_mode": true, "custom_drill_rule_id": 14}}`))

	assert.True(t, state.Config.CustomDrillMode)
	assert.Equal(t, 14, state.Config.CustomDrillRuleID)
	assert.True(t, state.Config.ShowDetailedFeedback, "absent config fields keep defaults")
	assert.Len(t, state.Config.EnabledCategories, 4)
}

func TestDecodeState_RepairsBrokenInvariants(t *testing.T) {
	state := repository.DecodeState([]byte(`{"score": -40, "current_streak": 6, "best_streak": 2, "total_answered": 3, "total_correct": 9}`))

	assert.Zero(t, state.Score)
	assert.Equal(t, 6, state.BestStreak, "best streak raised to current")
	assert.Equal(t, 3, state.TotalCorrect, "correct clamped to answered")
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	original := models.DefaultSessionState()
	original.Score = 75
	original.CurrentStreak = 2
	original.BestStreak = 8
	original.TotalAnswered = 40
	original.TotalCorrect = 31
	original.History = []models.HistoryEntry{
		{RuleID: 2, TrueCount: 3, Answer: "Stand", Correct: true, AnsweredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	original.WeakSpots = map[int]models.WeakSpotTally{
		14: {Misses: 4, Attempts: 9},
	}
	original.Config.CustomDrillMode = true
	original.Config.CustomDrillRangeLow = -2

	record, err := repository.EncodeState(original)
	require.NoError(t, err)

	assert.Equal(t, original, repository.DecodeState(record))
}
