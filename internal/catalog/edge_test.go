package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckwise/i18trainer/internal/catalog"
)

func TestIsEdgeCase(t *testing.T) {
	tests := []struct {
		trueCount int
		index     int
		want      bool
	}{
		{0, 0, true},
		{1, 0, true},
		{-1, 0, true},
		{2, 0, false},
		{-2, 0, false},
		{3, 4, true},
		{5, 4, true},
		{6, 4, false},
		{-2, -1, true},
		{-4, -1, false},
		{-1, -2, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, catalog.IsEdgeCase(tc.trueCount, tc.index),
			"trueCount=%d index=%d", tc.trueCount, tc.index)
	}
}

func TestEdgeCaseExplanation(t *testing.T) {
	t.Run("at the index", func(t *testing.T) {
		got := catalog.EdgeCaseExplanation(3, 3, "Take Insurance", "No Insurance")
		assert.Equal(t, "This is AT the index (3). Both plays are nearly equal in value here.", got)
	})

	t.Run("one above", func(t *testing.T) {
		got := catalog.EdgeCaseExplanation(4, 3, "Take Insurance", "No Insurance")
		assert.Equal(t, "True count (+4) is 1 above the index (3). The deviation is clearly correct.", got)
	})

	t.Run("one below", func(t *testing.T) {
		got := catalog.EdgeCaseExplanation(2, 3, "Take Insurance", "No Insurance")
		assert.Equal(t, "True count (+2) is 1 below the index (3). Basic strategy is correct here, but it's close.", got)
	})

	t.Run("well above", func(t *testing.T) {
		got := catalog.EdgeCaseExplanation(7, 3, "Take Insurance", "No Insurance")
		assert.Equal(t, "True count (+7) is well above the index (3). The deviation is strongly correct.", got)
	})

	t.Run("well below", func(t *testing.T) {
		got := catalog.EdgeCaseExplanation(-3, 0, "Stand", "Hit")
		assert.Equal(t, "True count (-3) is well below the index (0). Stick to basic strategy.", got)
	})
}
