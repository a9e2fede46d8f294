package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/deckwise/i18trainer/internal/errors"
	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerateScenario(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	scn, err := s.SessionService.Generate(r.Context(), key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, scn)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	key := sessionKeyFromContext(r.Context())

	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("invalid answer body: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if body.Action == "" {
		handleError(w, r, errors.NewValidationError("action", "must not be empty"))
		return
	}

	result, err := s.SessionService.Submit(r.Context(), key, body.Action)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	stats, err := s.SessionService.Summary(r.Context(), key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleWeakSpots(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	n := 5
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			handleError(w, r, errors.NewBadRequestError("invalid weak-spot count"))
			return
		}
		n = parsed
	}

	spots, err := s.SessionService.WeakSpots(r.Context(), key, n)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"weak_spots": spots})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	cfg, err := s.SessionService.Config(r.Context(), key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	key := sessionKeyFromContext(r.Context())

	var patch models.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Warn("invalid config body: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	cfg, err := s.SessionService.UpdateConfig(r.Context(), key, patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	if err := s.SessionService.Reset(r.Context(), key); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromContext(r.Context())

	filter := models.HistoryFilter{SessionKey: key}
	q := r.URL.Query()
	if v := q.Get("ruleId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid rule id"))
			return
		}
		filter.RuleID = id
	}
	if v := q.Get("correct"); v != "" {
		correct, err := strconv.ParseBool(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid correct flag"))
			return
		}
		filter.Correct = &correct
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	entries, err := s.SessionService.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"history": entries})
}
