package repository

import (
	"context"
	"time"

	"github.com/vytor/ayahrecall/internal/models"
)

// ReviewLogFilter narrows review log queries. Zero values match everything.
type ReviewLogFilter struct {
	ItemID string
	Since  time.Time
	Limit  int
}

// ReviewLogRepository handles the append-only review log.
type ReviewLogRepository interface {
	Append(ctx context.Context, entry models.ReviewLogEntry) (int64, error)
	List(ctx context.Context, filter ReviewLogFilter) ([]models.ReviewLogEntry, error)
	Count(ctx context.Context, filter ReviewLogFilter) (int, error)
}
