package api

import (
	"net/http"

	"github.com/vytor/ayahrecall/internal/errors"
)

type sessionReviewRequest struct {
	ItemID  string `json:"itemId" validate:"required"`
	Correct *bool  `json:"correct" validate:"required"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Study.StartSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sess)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Study.CurrentSession(r.Context())
	if !ok {
		handleError(w, r, errors.NewNotFoundError("session", "current"))
		return
	}
	writeJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleSessionReview(w http.ResponseWriter, r *http.Request) {
	var req sessionReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	sess, err := s.Study.RecordReview(r.Context(), req.ItemID, *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Study.EndSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Study.Sessions(r.Context()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Study.Stats(r.Context()))
}
