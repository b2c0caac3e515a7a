package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/repository"
)

type reviewLogRepository struct {
	db *sql.DB
}

// NewReviewLogRepository creates a new ReviewLogRepository implementation
func NewReviewLogRepository(db *sql.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Append(ctx context.Context, entry models.ReviewLogEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo").WithField("item_id", entry.ItemID)

	query, args, err := sqlBuilder.Insert("review_log").
		Columns("item_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		Values(entry.ItemID, entry.Quality, entry.IntervalDays, entry.EaseFactor, utc(entry.ReviewedAt)).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to append review: %v", err)
		return 0, fmt.Errorf("append review log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("review appended: id=%d, quality=%d", id, entry.Quality)
	return id, nil
}

func (r *reviewLogRepository) List(ctx context.Context, filter repository.ReviewLogFilter) ([]models.ReviewLogEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")

	query := applyFilter(sqlBuilder.Select("id", "item_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		From("review_log"), filter).
		OrderBy("reviewed_at DESC", "id DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := []models.ReviewLogEntry{}
	for rows.Next() {
		var e models.ReviewLogEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Quality, &e.IntervalDays, &e.EaseFactor, &e.ReviewedAt); err != nil {
			return nil, err
		}
		e.ReviewedAt = utc(e.ReviewedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("listed %d reviews", len(entries))
	return entries, nil
}

func (r *reviewLogRepository) Count(ctx context.Context, filter repository.ReviewLogFilter) (int, error) {
	sqlStr, args, err := applyFilter(sqlBuilder.Select("COUNT(*)").From("review_log"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func applyFilter(q squirrel.SelectBuilder, filter repository.ReviewLogFilter) squirrel.SelectBuilder {
	if filter.ItemID != "" {
		q = q.Where(squirrel.Eq{"item_id": filter.ItemID})
	}
	if !filter.Since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"reviewed_at": utc(filter.Since)})
	}
	return q
}
