package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Post("/items", s.handleRegisterItem)
		r.Route("/items/{itemId}", func(r chi.Router) {
			r.Get("/", s.handleGetItem)
			r.Post("/review", s.handleReviewItem)
			r.Get("/history", s.handleItemHistory)
			r.Get("/content", s.handleItemContent)
		})
		r.Get("/due", s.handleDue)
		r.Get("/editions", s.handleEditions)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleStartSession)
			r.Get("/current", s.handleCurrentSession)
			r.Post("/current/reviews", s.handleSessionReview)
			r.Post("/current/end", s.handleEndSession)
		})

		r.Get("/stats", s.handleStats)
	})
	return r
}
