package models

import (
	"strings"
	"time"
)

// ThresholdDirection determines which side of the index triggers the deviation.
type ThresholdDirection string

const (
	// AtOrAbove means the deviation is correct when trueCount >= index.
	AtOrAbove ThresholdDirection = "at_or_above"
	// AtOrBelow means the deviation is correct when trueCount <= index.
	AtOrBelow ThresholdDirection = "at_or_below"
)

// Category groups deviation rules for filtering in the practice view.
type Category string

const (
	CategoryHardTotal  Category = "hard_total"
	CategorySoftDouble Category = "soft_double"
	CategoryPairSplit  Category = "pair_split"
	CategoryInsurance  Category = "insurance"
)

// AnyHand is the player-hand sentinel used only by the insurance rule.
const AnyHand = "Any"

// DeviationRule is one index play: the hand, the upcard, the two candidate
// actions and the true-count threshold at which the correct action flips.
type DeviationRule struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	PlayerHand    string             `json:"player_hand"`
	DealerUpcard  string             `json:"dealer_upcard"`
	BasicStrategy string             `json:"basic_strategy"`
	Deviation     string             `json:"deviation"`
	Index         int                `json:"index"`
	Direction     ThresholdDirection `json:"direction"`
	Explanation   string             `json:"explanation"`
}

// Category derives the rule's group from its hand descriptor and deviation
// action. It is computed, never stored.
func (r DeviationRule) Category() Category {
	switch {
	case r.PlayerHand == AnyHand:
		return CategoryInsurance
	case strings.Contains(r.PlayerHand, ","):
		return CategoryPairSplit
	case r.Deviation == "Double" || strings.Contains(r.PlayerHand, "A"):
		return CategorySoftDouble
	default:
		return CategoryHardTotal
	}
}

// Scenario is one generated question: a rule plus a sampled true count and
// the derived correct answer.
type Scenario struct {
	Rule          DeviationRule `json:"rule"`
	TrueCount     int           `json:"true_count"`
	ShouldDeviate bool          `json:"should_deviate"`
	CorrectAction string        `json:"correct_action"`
	IsEdgeCase    bool          `json:"is_edge_case"`
}

// GradingResult is returned after an answer is scored.
type GradingResult struct {
	IsCorrect           bool   `json:"is_correct"`
	CorrectAction       string `json:"correct_action"`
	BasicStrategy       string `json:"basic_strategy"`
	Deviation           string `json:"deviation"`
	Explanation         string `json:"explanation"`
	IsEdgeCase          bool   `json:"is_edge_case"`
	EdgeCaseExplanation string `json:"edge_case_explanation,omitempty"`
	Score               int    `json:"score"`
	Streak              int    `json:"streak"`
}

// HistoryEntry records one graded answer.
type HistoryEntry struct {
	RuleID     int       `json:"rule_id"`
	TrueCount  int       `json:"true_count"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// HistoryFilter selects history rows for the stats view.
type HistoryFilter struct {
	SessionKey string
	RuleID     int   // 0 = all rules
	Correct    *bool // nil = both
	Limit      int
	Offset     int
}

// WeakSpotTally tracks per-rule exposure. Misses only grows on wrong
// answers; Attempts grows on every graded answer for the rule.
type WeakSpotTally struct {
	Misses   int `json:"misses"`
	Attempts int `json:"attempts"`
}

// WeakSpot is one entry of the ranked weak-spot list.
type WeakSpot struct {
	RuleID   int    `json:"rule_id"`
	Name     string `json:"name"`
	Misses   int    `json:"misses"`
	Attempts int    `json:"attempts"`
}

// Stats summarizes a session for the stats view.
type Stats struct {
	TotalAnswered   int `json:"total_answered"`
	TotalCorrect    int `json:"total_correct"`
	AccuracyPercent int `json:"accuracy_percent"`
	BestStreak      int `json:"best_streak"`
	Score           int `json:"score"`
	CurrentStreak   int `json:"current_streak"`
}

// SessionConfig holds per-session practice settings.
type SessionConfig struct {
	EnabledCategories    []Category `json:"enabled_categories"`
	ShowDetailedFeedback bool       `json:"show_detailed_feedback"`
	CustomDrillMode      bool       `json:"custom_drill_mode"`
	CustomDrillRuleID    int        `json:"custom_drill_rule_id"`
	CustomDrillRangeLow  int        `json:"custom_drill_range_low"`
	CustomDrillRangeHigh int        `json:"custom_drill_range_high"`
}

// ConfigPatch is a partial config update; nil fields are left untouched.
type ConfigPatch struct {
	EnabledCategories    *[]Category `json:"enabled_categories,omitempty"`
	ShowDetailedFeedback *bool       `json:"show_detailed_feedback,omitempty"`
	CustomDrillMode      *bool       `json:"custom_drill_mode,omitempty"`
	CustomDrillRuleID    *int        `json:"custom_drill_rule_id,omitempty"`
	CustomDrillRangeLow  *int        `json:"custom_drill_range_low,omitempty"`
	CustomDrillRangeHigh *int        `json:"custom_drill_range_high,omitempty"`
}

// SessionState is the single persisted record per session. Its field names
// are the compatibility contract with previously saved records.
type SessionState struct {
	Score         int                   `json:"score"`
	CurrentStreak int                   `json:"current_streak"`
	BestStreak    int                   `json:"best_streak"`
	TotalAnswered int                   `json:"total_answered"`
	TotalCorrect  int                   `json:"total_correct"`
	History       []HistoryEntry        `json:"history"`
	WeakSpots     map[int]WeakSpotTally `json:"weak_spots"`
	Config        SessionConfig         `json:"config"`
}

// DefaultConfig enables every category with detailed feedback on. The drill
// range mirrors the generator's global sampling range.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		EnabledCategories: []Category{
			CategoryHardTotal,
			CategorySoftDouble,
			CategoryPairSplit,
			CategoryInsurance,
		},
		ShowDetailedFeedback: true,
		CustomDrillMode:      false,
		CustomDrillRuleID:    2,
		CustomDrillRangeLow:  -5,
		CustomDrillRangeHigh: 8,
	}
}

// DefaultSessionState returns a fresh, empty session.
func DefaultSessionState() SessionState {
	return SessionState{
		WeakSpots: make(map[int]WeakSpotTally),
		Config:    DefaultConfig(),
	}
}
