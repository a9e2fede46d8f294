package api

import (
	"net/http"

	"github.com/deckwise/i18trainer/internal/catalog"
	"github.com/deckwise/i18trainer/internal/errors"
	"github.com/deckwise/i18trainer/internal/models"
)

// chartFilters maps the study-view filter names onto rule categories.
var chartFilters = map[string][]models.Category{
	"hard":      {models.CategoryHardTotal},
	"soft":      {models.CategorySoftDouble},
	"pairs":     {models.CategoryPairSplit},
	"insurance": {models.CategoryInsurance},
}

// handleChart serves the deviation reference table for the study view.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	var rules []models.DeviationRule
	switch filter {
	case "", "all":
		rules = catalog.ListAll()
	default:
		categories, ok := chartFilters[filter]
		if !ok {
			handleError(w, r, errors.NewBadRequestError("unknown chart filter"))
			return
		}
		rules = catalog.FilterByCategory(categories)
	}

	type chartRow struct {
		models.DeviationRule
		Category models.Category `json:"category"`
	}
	rows := make([]chartRow, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, chartRow{DeviationRule: rule, Category: rule.Category()})
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"rules": rows})
}
