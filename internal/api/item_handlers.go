package api

import (
	"net/http"

	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/services"
)

type registerItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type reviewItemRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

type registerItemResponse struct {
	Created bool                `json:"created"`
	Record  models.ReviewRecord `json:"record"`
}

func (s *Server) handleRegisterItem(w http.ResponseWriter, r *http.Request) {
	var req registerItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rec, created, err := s.Study.Register(r.Context(), req.ItemID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, registerItemResponse{Created: created, Record: rec})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	rec, err := s.Study.Record(r.Context(), itemID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleReviewItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log := logger.FromContext(r.Context()).WithField("item_id", itemID)

	var req reviewItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.Study.Review(r.Context(), itemID, *req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("item reviewed: quality=%d, next_review_at=%s", *req.Quality, out.Record.NextReviewAt.Format("2006-01-02"))
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleItemHistory(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	since, err := queryTime(r, "since")
	if err != nil {
		handleError(w, r, err)
		return
	}
	page, err := s.Study.History(r.Context(), itemID, services.HistoryQuery{Limit: limit, Since: since})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleItemContent(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	v, err := s.Content.Verse(r.Context(), itemID, r.URL.Query().Get("edition"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleEditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Content.Editions())
}

func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	due, err := s.Study.Due(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, due)
}
