package api

import (
	"context"

	"github.com/vytor/ayahrecall/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Study   services.StudyService
	Content services.ContentService
	DB      Pinger
}

func NewServer(study services.StudyService, content services.ContentService, db Pinger) *Server {
	return &Server{Study: study, Content: content, DB: db}
}
