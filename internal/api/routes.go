package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(sessionMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/chart", s.handleChart)
		r.Route("/session", func(r chi.Router) {
			r.Post("/scenario", s.handleGenerateScenario)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Get("/summary", s.handleSummary)
			r.Get("/weak-spots", s.handleWeakSpots)
			r.Get("/config", s.handleGetConfig)
			r.Put("/config", s.handleUpdateConfig)
			r.Post("/reset", s.handleReset)
			r.Get("/history", s.handleHistory)
		})
	})

	return r
}
