package api

import (
	"encoding/json"
	"net/http"

	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/services"
)

// Server wires the HTTP surface to the session service. It owns no domain
// state; every handler resolves a session key from the request and delegates.
type Server struct {
	SessionService services.SessionService
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
