package repository

import (
	"encoding/json"

	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/models"
)

// EncodeState serializes a session state into the persisted record.
func EncodeState(state models.SessionState) ([]byte, error) {
	return json.Marshal(state)
}

// DecodeState restores a session state from a persisted record. Decoding is
// tolerant: every field falls back to its default independently, so a record
// written by an older version (or a damaged one) never rejects the whole
// session.
func DecodeState(record []byte) models.SessionState {
	state := models.DefaultSessionState()
	if len(record) == 0 {
		return state
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(record, &raw); err != nil {
		logger.Default().Warn("malformed session record, starting fresh: %v", err)
		return state
	}

	decodeField(raw, "score", &state.Score)
	decodeField(raw, "current_streak", &state.CurrentStreak)
	decodeField(raw, "best_streak", &state.BestStreak)
	decodeField(raw, "total_answered", &state.TotalAnswered)
	decodeField(raw, "total_correct", &state.TotalCorrect)
	decodeField(raw, "history", &state.History)
	decodeField(raw, "weak_spots", &state.WeakSpots)

	if cfgRaw, ok := raw["config"]; ok {
		var cfg map[string]json.RawMessage
		if err := json.Unmarshal(cfgRaw, &cfg); err == nil {
			decodeField(cfg, "enabled_categories", &state.Config.EnabledCategories)
			decodeField(cfg, "show_detailed_feedback", &state.Config.ShowDetailedFeedback)
			decodeField(cfg, "custom_drill_mode", &state.Config.CustomDrillMode)
			decodeField(cfg, "custom_drill_rule_id", &state.Config.CustomDrillRuleID)
			decodeField(cfg, "custom_drill_range_low", &state.Config.CustomDrillRangeLow)
			decodeField(cfg, "custom_drill_range_high", &state.Config.CustomDrillRangeHigh)
		}
	}

	if state.WeakSpots == nil {
		state.WeakSpots = make(map[int]models.WeakSpotTally)
	}
	// Enforce the record invariants a hand-edited file could break.
	if state.Score < 0 {
		state.Score = 0
	}
	if state.BestStreak < state.CurrentStreak {
		state.BestStreak = state.CurrentStreak
	}
	if state.TotalCorrect > state.TotalAnswered {
		state.TotalCorrect = state.TotalAnswered
	}
	return state
}

// decodeField unmarshals one field, leaving dst untouched when the field is
// absent or malformed.
func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	msg, ok := raw[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		logger.Default().Warn("ignoring malformed session field %q: %v", key, err)
		return
	}
	*dst = v
}
