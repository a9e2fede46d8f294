package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwise/i18trainer/internal/catalog"
	"github.com/deckwise/i18trainer/internal/models"
)

func TestListAll_HasEighteenRules(t *testing.T) {
	rules := catalog.ListAll()
	require.Len(t, rules, 18)

	seen := map[int]bool{}
	for _, r := range rules {
		assert.Greater(t, r.ID, 0, "ids must be positive")
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.BasicStrategy)
		assert.NotEmpty(t, r.Deviation)
		assert.NotEmpty(t, r.Explanation)
	}
}

func TestListAll_ExactlyOneInsuranceRule(t *testing.T) {
	var insurance []models.DeviationRule
	for _, r := range catalog.ListAll() {
		if r.PlayerHand == models.AnyHand {
			insurance = append(insurance, r)
		}
	}
	require.Len(t, insurance, 1, "exactly one rule uses the any-hand sentinel")
	assert.Equal(t, "A", insurance[0].DealerUpcard, "insurance pairs with an ace upcard")
	assert.Equal(t, models.CategoryInsurance, insurance[0].Category())
}

func TestListAll_NegativeIndexRulesAreAtOrBelow(t *testing.T) {
	for _, r := range catalog.ListAll() {
		if r.BasicStrategy == "Stand" && r.Deviation == "Hit" {
			assert.Equal(t, models.AtOrBelow, r.Direction, "rule %q loosens at negative counts", r.Name)
		} else {
			assert.Equal(t, models.AtOrAbove, r.Direction, "rule %q tightens at positive counts", r.Name)
		}
	}
}

func TestListAll_ReturnsCopy(t *testing.T) {
	first := catalog.ListAll()
	first[0].Name = "mutated"

	again := catalog.ListAll()
	assert.Equal(t, "Insurance", again[0].Name)
}

func TestByID(t *testing.T) {
	rule, ok := catalog.ByID(14)
	require.True(t, ok)
	assert.Equal(t, "13 vs 2", rule.Name)
	assert.Equal(t, -1, rule.Index)

	_, ok = catalog.ByID(99)
	assert.False(t, ok)
}

func TestFirst(t *testing.T) {
	assert.Equal(t, 1, catalog.First().ID)
}

func TestCategoryDerivation(t *testing.T) {
	tests := []struct {
		id   int
		want models.Category
	}{
		{1, models.CategoryInsurance},
		{2, models.CategoryHardTotal},
		{4, models.CategoryPairSplit},
		{5, models.CategoryPairSplit},
		{6, models.CategorySoftDouble},
		{9, models.CategorySoftDouble},
		{14, models.CategoryHardTotal},
		{18, models.CategoryHardTotal},
	}
	for _, tc := range tests {
		rule, ok := catalog.ByID(tc.id)
		require.True(t, ok)
		assert.Equal(t, tc.want, rule.Category(), "rule %q", rule.Name)
	}
}

func TestFilterByCategory_PreservesOrder(t *testing.T) {
	rules := catalog.FilterByCategory([]models.Category{models.CategoryPairSplit, models.CategorySoftDouble})

	var ids []int
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{4, 5, 6, 9, 10, 11, 12}, ids)
}

func TestFilterByCategory_EmptySet(t *testing.T) {
	assert.Empty(t, catalog.FilterByCategory(nil))
	assert.Empty(t, catalog.FilterByCategory([]models.Category{}))
}
