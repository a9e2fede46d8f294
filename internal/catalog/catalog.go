// Package catalog holds the Illustrious 18, the eighteen Hi-Lo index plays,
// and the pure helpers for classifying true counts against their thresholds.
package catalog

import "github.com/deckwise/i18trainer/internal/models"

// rules is the fixed, ordered catalog. Ids are stable across sessions and
// are used as foreign keys in persisted weak-spot records.
var rules = []models.DeviationRule{
	{
		ID:            1,
		Name:          "Insurance",
		PlayerHand:    models.AnyHand,
		DealerUpcard:  "A",
		BasicStrategy: "No Insurance",
		Deviation:     "Take Insurance",
		Index:         3,
		Direction:     models.AtOrAbove,
		Explanation:   "When the true count is +3 or higher, the deck is rich in tens, making insurance a positive EV play.",
	},
	{
		ID:            2,
		Name:          "16 vs 10",
		PlayerHand:    "16",
		DealerUpcard:  "10",
		BasicStrategy: "Hit",
		Deviation:     "Stand",
		Index:         0,
		Direction:     models.AtOrAbove,
		Explanation:   "At true count 0 or higher, standing on 16 vs 10 becomes the better play. The high count means more tens remain, making the dealer more likely to bust.",
	},
	{
		ID:            3,
		Name:          "15 vs 10",
		PlayerHand:    "15",
		DealerUpcard:  "10",
		BasicStrategy: "Hit",
		Deviation:     "Stand",
		Index:         4,
		Direction:     models.AtOrAbove,
		Explanation:   "Only stand on 15 vs 10 when the true count is +4 or higher. This is a borderline play requiring a very high count.",
	},
	{
		ID:            4,
		Name:          "10,10 vs 5",
		PlayerHand:    "10,10",
		DealerUpcard:  "5",
		BasicStrategy: "Stand",
		Deviation:     "Split",
		Index:         5,
		Direction:     models.AtOrAbove,
		Explanation:   "Split tens against a 5 only at +5 or higher. This is a very aggressive play that signals a massive player edge.",
	},
	{
		ID:            5,
		Name:          "10,10 vs 6",
		PlayerHand:    "10,10",
		DealerUpcard:  "6",
		BasicStrategy: "Stand",
		Deviation:     "Split",
		Index:         4,
		Direction:     models.AtOrAbove,
		Explanation:   "Split tens against a 6 at +4 or higher. Slightly lower threshold than against a 5 due to the dealer's weaker position.",
	},
	{
		ID:            6,
		Name:          "10 vs 10",
		PlayerHand:    "10",
		DealerUpcard:  "10",
		BasicStrategy: "Hit",
		Deviation:     "Double",
		Index:         4,
		Direction:     models.AtOrAbove,
		Explanation:   "Double 10 vs 10 at +4 or higher. This is a very aggressive play requiring a massive player edge.",
	},
	{
		ID:            7,
		Name:          "12 vs 3",
		PlayerHand:    "12",
		DealerUpcard:  "3",
		BasicStrategy: "Hit",
		Deviation:     "Stand",
		Index:         2,
		Direction:     models.AtOrAbove,
		Explanation:   "Stand on 12 vs 3 at +2 or higher. The dealer's weak upcard combined with a rich deck makes standing better.",
	},
	{
		ID:            8,
		Name:          "12 vs 2",
		PlayerHand:    "12",
		DealerUpcard:  "2",
		BasicStrategy: "Hit",
		Deviation:     "Stand",
		Index:         3,
		Direction:     models.AtOrAbove,
		Explanation:   "Stand on 12 vs 2 at +3 or higher. The dealer's 2 is deceptively strong, requiring a higher count to deviate.",
	},
	{
		ID:            9,
		Name:          "11 vs A",
		PlayerHand:    "11",
		DealerUpcard:  "A",
		BasicStrategy: "Hit",
		Deviation:     "Double",
		Index:         1,
		Direction:     models.AtOrAbove,
		Explanation:   "Double 11 vs Ace at +1 or higher. With a rich deck, doubling becomes profitable even against the dealer's strong ace.",
	},
	{
		ID:            10,
		Name:          "9 vs 2",
		PlayerHand:    "9",
		DealerUpcard:  "2",
		BasicStrategy: "Hit",
		Deviation:     "Double",
		Index:         1,
		Direction:     models.AtOrAbove,
		Explanation:   "Double 9 vs 2 at +1 or higher. The dealer's weak 2 makes this a profitable double with any positive count.",
	},
	{
		ID:            11,
		Name:          "10 vs A",
		PlayerHand:    "10",
		DealerUpcard:  "A",
		BasicStrategy: "Hit",
		Deviation:     "Double",
		Index:         4,
		Direction:     models.AtOrAbove,
		Explanation:   "Double 10 vs Ace at +4 or higher. The ace is the dealer's strongest card, requiring a high count to double.",
	},
	{
		ID:            12,
		Name:          "9 vs 7",
		PlayerHand:    "9",
		DealerUpcard:  "7",
		BasicStrategy: "Hit",
		Deviation:     "Double",
		Index:         3,
		Direction:     models.AtOrAbove,
		Explanation:   "Double 9 vs 7 at +3 or higher. The 7 is weaker than it appears, and a high count makes doubling profitable.",
	},
	{
		ID:            13,
		Name:          "16 vs 9",
		PlayerHand:    "16",
		DealerUpcard:  "9",
		BasicStrategy: "Hit",
		Deviation:     "Stand",
		Index:         5,
		Direction:     models.AtOrAbove,
		Explanation:   "Stand on 16 vs 9 at +5 or higher. Against the dealer's strong 9, you need a very high count to stand.",
	},
	{
		ID:            14,
		Name:          "13 vs 2",
		PlayerHand:    "13",
		DealerUpcard:  "2",
		BasicStrategy: "Stand",
		Deviation:     "Hit",
		Index:         -1,
		Direction:     models.AtOrBelow,
		Explanation:   "Basic strategy is to stand on 13 vs 2. Only hit when the true count is -1 or lower (negative counts).",
	},
	{
		ID:            15,
		Name:          "12 vs 4",
		PlayerHand:    "12",
		DealerUpcard:  "4",
		BasicStrategy: "Stand",
		Deviation:     "Hit",
		Index:         0,
		Direction:     models.AtOrBelow,
		Explanation:   "Basic strategy is to stand on 12 vs 4. Only hit when the true count is 0 or lower.",
	},
	{
		ID:            16,
		Name:          "12 vs 5",
		PlayerHand:    "12",
		DealerUpcard:  "5",
		BasicStrategy: "Stand",
		Deviation:     "Hit",
		Index:         -1,
		Direction:     models.AtOrBelow,
		Explanation:   "Stand on 12 vs 5 at positive counts. Only hit when the true count is -1 or lower.",
	},
	{
		ID:            17,
		Name:          "12 vs 6",
		PlayerHand:    "12",
		DealerUpcard:  "6",
		BasicStrategy: "Stand",
		Deviation:     "Hit",
		Index:         -1,
		Direction:     models.AtOrBelow,
		Explanation:   "Basic strategy is to stand on 12 vs 6. Only hit when the true count is -1 or lower.",
	},
	{
		ID:            18,
		Name:          "13 vs 3",
		PlayerHand:    "13",
		DealerUpcard:  "3",
		BasicStrategy: "Stand",
		Deviation:     "Hit",
		Index:         -2,
		Direction:     models.AtOrBelow,
		Explanation:   "Basic strategy is to stand on 13 vs 3. Only hit when the true count is -2 or lower.",
	},
}

// ListAll returns the fixed, ordered catalog. The returned slice is a copy;
// callers may not mutate the catalog.
func ListAll() []models.DeviationRule {
	out := make([]models.DeviationRule, len(rules))
	copy(out, rules)
	return out
}

// ByID looks up a rule by its stable id.
func ByID(id int) (models.DeviationRule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return models.DeviationRule{}, false
}

// First returns the first rule of the catalog. Generation falls back to it
// when a configured drill rule id no longer exists.
func First() models.DeviationRule {
	return rules[0]
}

// FilterByCategory returns the subsequence of the catalog, in original
// order, whose category is in the given set.
func FilterByCategory(categories []models.Category) []models.DeviationRule {
	set := make(map[models.Category]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	var out []models.DeviationRule
	for _, r := range rules {
		if set[r.Category()] {
			out = append(out, r)
		}
	}
	return out
}
