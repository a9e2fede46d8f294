// Package engine owns the state of one practice session: scenario
// generation, answer grading, score and streak accounting, and the
// weak-spot tallies. It emits plain data; rendering and persistence live
// with the caller.
package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/deckwise/i18trainer/internal/catalog"
	"github.com/deckwise/i18trainer/internal/errors"
	"github.com/deckwise/i18trainer/internal/models"
)

const (
	// nearThresholdChance is how often a count is sampled near the index
	// instead of from the full range, to surface borderline judgment.
	nearThresholdChance = 0.4
	// insuranceKeepChance thins insurance down from its uniform 1-in-18
	// share to roughly 2% of questions, matching its rarity at the table.
	insuranceKeepChance = 0.36
	// Global true-count sampling range.
	countRangeLow  = -5
	countRangeHigh = 8

	correctBase    = 10
	streakBonusCap = 20
	wrongPenalty   = 5

	defaultHistoryLimit = 100
)

// Session is a single player's practice session. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	state        models.SessionState
	current      *models.Scenario
	graded       bool
	rng          *rand.Rand
	now          func() time.Time
	historyLimit int
}

// Option configures a Session.
type Option func(*Session)

// WithState restores a previously persisted session state.
func WithState(state models.SessionState) Option {
	return func(s *Session) { s.state = state }
}

// WithRand sets the random source, letting tests pin the sequence.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock sets the timestamp source for history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithHistoryLimit overrides the history retention cap.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// New creates a session with default state.
func New(opts ...Option) *Session {
	s := &Session{
		state:        models.DefaultSessionState(),
		now:          time.Now,
		historyLimit: defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.state.WeakSpots == nil {
		s.state.WeakSpots = make(map[int]models.WeakSpotTally)
	}
	return s
}

// GenerateScenario draws a new scenario and makes it the current one,
// discarding any previous scenario. It never fails: invalid drill ids and
// empty category pools fall back silently to a playable pool.
func (s *Session) GenerateScenario() models.Scenario {
	cfg := s.state.Config

	var rule models.DeviationRule
	if cfg.CustomDrillMode {
		r, ok := catalog.ByID(cfg.CustomDrillRuleID)
		if !ok {
			r = catalog.First()
		}
		rule = r
	} else {
		rule = s.pickRule(cfg.EnabledCategories)
	}

	trueCount := s.sampleTrueCount(rule, cfg)

	shouldDeviate := trueCount >= rule.Index
	if rule.Direction == models.AtOrBelow {
		shouldDeviate = trueCount <= rule.Index
	}
	correct := rule.BasicStrategy
	if shouldDeviate {
		correct = rule.Deviation
	}

	scn := models.Scenario{
		Rule:          rule,
		TrueCount:     trueCount,
		ShouldDeviate: shouldDeviate,
		CorrectAction: correct,
		IsEdgeCase:    catalog.IsEdgeCase(trueCount, rule.Index),
	}
	s.current = &scn
	s.graded = false
	return scn
}

// pickRule draws uniformly from the enabled pool, thinning insurance to
// insuranceKeepChance of its uniform share.
func (s *Session) pickRule(categories []models.Category) models.DeviationRule {
	pool := catalog.FilterByCategory(categories)
	if len(pool) == 0 {
		pool = catalog.ListAll()
	}

	rule := pool[s.rng.Intn(len(pool))]
	if rule.Category() == models.CategoryInsurance && s.rng.Float64() > insuranceKeepChance {
		rest := make([]models.DeviationRule, 0, len(pool)-1)
		for _, r := range pool {
			if r.Category() != models.CategoryInsurance {
				rest = append(rest, r)
			}
		}
		if len(rest) > 0 {
			rule = rest[s.rng.Intn(len(rest))]
		}
	}
	return rule
}

func (s *Session) sampleTrueCount(rule models.DeviationRule, cfg models.SessionConfig) int {
	if cfg.CustomDrillMode {
		lo, hi := cfg.CustomDrillRangeLow, cfg.CustomDrillRangeHigh
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo + s.rng.Intn(hi-lo+1)
	}
	if s.rng.Float64() < nearThresholdChance {
		return rule.Index + s.rng.Intn(5) - 2
	}
	return countRangeLow + s.rng.Intn(countRangeHigh-countRangeLow+1)
}

// canonicalAction collapses the two labels used for taking insurance so a
// shorthand answer grades identically to the full label.
func canonicalAction(action string) string {
	if action == "Take Insurance" {
		return "Insurance"
	}
	return action
}

// SubmitAnswer grades the current scenario. All state effects are applied
// before returning. A scenario can only be graded once.
func (s *Session) SubmitAnswer(action string) (models.GradingResult, error) {
	if s.current == nil {
		return models.GradingResult{}, errors.NewNoActiveScenarioError()
	}
	if s.graded {
		return models.GradingResult{}, errors.NewAlreadyGradedError()
	}

	scn := *s.current
	isCorrect := canonicalAction(action) == canonicalAction(scn.CorrectAction)

	s.state.TotalAnswered++
	tally := s.state.WeakSpots[scn.Rule.ID]
	tally.Attempts++
	if isCorrect {
		s.state.TotalCorrect++
		s.state.CurrentStreak++
		if s.state.CurrentStreak > s.state.BestStreak {
			s.state.BestStreak = s.state.CurrentStreak
		}
		bonus := s.state.CurrentStreak * 2
		if bonus > streakBonusCap {
			bonus = streakBonusCap
		}
		s.state.Score += correctBase + bonus
	} else {
		s.state.CurrentStreak = 0
		s.state.Score -= wrongPenalty
		if s.state.Score < 0 {
			s.state.Score = 0
		}
		tally.Misses++
	}
	s.state.WeakSpots[scn.Rule.ID] = tally

	s.state.History = append(s.state.History, models.HistoryEntry{
		RuleID:     scn.Rule.ID,
		TrueCount:  scn.TrueCount,
		Answer:     action,
		Correct:    isCorrect,
		AnsweredAt: s.now(),
	})
	if over := len(s.state.History) - s.historyLimit; over > 0 {
		s.state.History = append(s.state.History[:0:0], s.state.History[over:]...)
	}

	s.graded = true

	result := models.GradingResult{
		IsCorrect:     isCorrect,
		CorrectAction: scn.CorrectAction,
		BasicStrategy: scn.Rule.BasicStrategy,
		Deviation:     scn.Rule.Deviation,
		Explanation:   scn.Rule.Explanation,
		IsEdgeCase:    scn.IsEdgeCase,
		Score:         s.state.Score,
		Streak:        s.state.CurrentStreak,
	}
	if scn.IsEdgeCase {
		result.EdgeCaseExplanation = catalog.EdgeCaseExplanation(
			scn.TrueCount, scn.Rule.Index, scn.Rule.Deviation, scn.Rule.BasicStrategy)
	}
	return result, nil
}

// Summary returns the session's headline statistics.
func (s *Session) Summary() models.Stats {
	accuracy := 0
	if s.state.TotalAnswered > 0 {
		accuracy = int(float64(s.state.TotalCorrect)/float64(s.state.TotalAnswered)*100 + 0.5)
	}
	return models.Stats{
		TotalAnswered:   s.state.TotalAnswered,
		TotalCorrect:    s.state.TotalCorrect,
		AccuracyPercent: accuracy,
		BestStreak:      s.state.BestStreak,
		Score:           s.state.Score,
		CurrentStreak:   s.state.CurrentStreak,
	}
}

// TopWeakSpots returns up to n rules the player has missed, most-missed
// first, ties broken by catalog order.
func (s *Session) TopWeakSpots(n int) []models.WeakSpot {
	var spots []models.WeakSpot
	for _, rule := range catalog.ListAll() {
		tally, ok := s.state.WeakSpots[rule.ID]
		if !ok || tally.Misses == 0 {
			continue
		}
		spots = append(spots, models.WeakSpot{
			RuleID:   rule.ID,
			Name:     rule.Name,
			Misses:   tally.Misses,
			Attempts: tally.Attempts,
		})
	}
	// Catalog order is preserved for equal miss counts.
	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].Misses > spots[j].Misses
	})
	if n >= 0 && len(spots) > n {
		spots = spots[:n]
	}
	return spots
}

// SetConfig merges the non-nil fields of the patch into the session config.
// Drill range normalization is deferred to generation time.
func (s *Session) SetConfig(patch models.ConfigPatch) error {
	if patch.CustomDrillRuleID != nil {
		if _, ok := catalog.ByID(*patch.CustomDrillRuleID); !ok {
			return errors.NewInvalidRuleIDError(*patch.CustomDrillRuleID)
		}
		s.state.Config.CustomDrillRuleID = *patch.CustomDrillRuleID
	}
	if patch.EnabledCategories != nil {
		s.state.Config.EnabledCategories = append([]models.Category(nil), (*patch.EnabledCategories)...)
	}
	if patch.ShowDetailedFeedback != nil {
		s.state.Config.ShowDetailedFeedback = *patch.ShowDetailedFeedback
	}
	if patch.CustomDrillMode != nil {
		s.state.Config.CustomDrillMode = *patch.CustomDrillMode
	}
	if patch.CustomDrillRangeLow != nil {
		s.state.Config.CustomDrillRangeLow = *patch.CustomDrillRangeLow
	}
	if patch.CustomDrillRangeHigh != nil {
		s.state.Config.CustomDrillRangeHigh = *patch.CustomDrillRangeHigh
	}
	return nil
}

// Config returns a copy of the session config.
func (s *Session) Config() models.SessionConfig {
	cfg := s.state.Config
	cfg.EnabledCategories = append([]models.Category(nil), cfg.EnabledCategories...)
	return cfg
}

// Reset clears score, streaks, totals, history and weak spots. The config
// is left untouched.
func (s *Session) Reset() {
	cfg := s.state.Config
	s.state = models.DefaultSessionState()
	s.state.Config = cfg
	s.current = nil
	s.graded = false
}

// State returns a snapshot of the session state for persistence.
func (s *Session) State() models.SessionState {
	state := s.state
	state.History = append([]models.HistoryEntry(nil), s.state.History...)
	state.WeakSpots = make(map[int]models.WeakSpotTally, len(s.state.WeakSpots))
	for k, v := range s.state.WeakSpots {
		state.WeakSpots[k] = v
	}
	state.Config.EnabledCategories = append([]models.Category(nil), s.state.Config.EnabledCategories...)
	return state
}
