package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/db"
	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/repository"
)

const (
	streakRowID         = 1
	counterTotalReviews = "total_reviews"
)

type stateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new StateRepository implementation
func NewStateRepository(db *sql.DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Save(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	log.Debug("saving snapshot: records=%d, sessions=%d, total_reviews=%d", len(snap.Records), len(snap.Sessions), snap.TotalReviews)

	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM session_items`,
			`DELETE FROM study_sessions`,
			`DELETE FROM review_records`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clear state: %w", err)
			}
		}
		if err := saveRecords(ctx, tx, snap.Records); err != nil {
			return err
		}
		if err := saveStreak(ctx, tx, snap.Streak); err != nil {
			return err
		}
		if err := saveSessions(ctx, tx, snap.Sessions); err != nil {
			return err
		}
		return saveCounter(ctx, tx, counterTotalReviews, snap.TotalReviews)
	})
	if err != nil {
		log.Error("failed to save snapshot: %v", err)
		return err
	}
	log.Debug("snapshot saved")
	return nil
}

func saveRecords(ctx context.Context, tx *sql.Tx, records map[string]models.Schedule) error {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	err := execBatches(ctx, tx, len(ids), func(lo, hi int) squirrel.InsertBuilder {
		q := sqlBuilder.Insert("review_records").
			Columns("item_id", "next_review_at", "interval_days", "ease_factor", "repetitions", "last_reviewed_at")
		for _, id := range ids[lo:hi] {
			s := records[id]
			q = q.Values(id, utc(s.NextReviewAt), s.IntervalDays, s.EaseFactor, s.Repetitions, nullTime(s.LastReviewedAt))
		}
		return q
	})
	if err != nil {
		return fmt.Errorf("insert review records: %w", err)
	}
	return nil
}

func saveStreak(ctx context.Context, tx *sql.Tx, s models.StreakState) error {
	query, args, err := sqlBuilder.Insert("streak_state").
		Columns("id", "streak_count", "last_review_date").
		Values(streakRowID, s.StreakCount, s.LastReviewDate).
		Suffix("ON CONFLICT(id) DO UPDATE SET streak_count = excluded.streak_count, last_review_date = excluded.last_review_date").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

func saveSessions(ctx context.Context, tx *sql.Tx, sessions []models.StudySession) error {
	for i, sess := range sessions {
		if sess.EndTime == nil {
			return fmt.Errorf("session %s is still open", sess.ID)
		}
		query, args, err := sqlBuilder.Insert("study_sessions").
			Columns("id", "seq", "start_time", "end_time", "correct_count", "total_count").
			Values(sess.ID, i, utc(sess.StartTime), utc(*sess.EndTime), sess.CorrectCount, sess.TotalCount).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert session %s: %w", sess.ID, err)
		}

		items := sess.ItemIDs
		err = execBatches(ctx, tx, len(items), func(lo, hi int) squirrel.InsertBuilder {
			q := sqlBuilder.Insert("session_items").Columns("session_id", "position", "item_id")
			for pos := lo; pos < hi; pos++ {
				q = q.Values(sess.ID, pos, items[pos])
			}
			return q
		})
		if err != nil {
			return fmt.Errorf("insert items of session %s: %w", sess.ID, err)
		}
	}
	return nil
}

func saveCounter(ctx context.Context, tx *sql.Tx, name string, value int) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO counters (name, value) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value
`, name, value)
	if err != nil {
		return fmt.Errorf("upsert counter %s: %w", name, err)
	}
	return nil
}

func (r *stateRepository) Load(ctx context.Context) (models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	log.Debug("loading snapshot")

	snap := models.NewSnapshot()
	var err error
	if snap.Records, err = r.loadRecords(ctx); err != nil {
		log.Error("failed to load review records: %v", err)
		return models.Snapshot{}, err
	}
	if snap.Streak, err = r.loadStreak(ctx); err != nil {
		log.Error("failed to load streak: %v", err)
		return models.Snapshot{}, err
	}
	if snap.Sessions, err = r.loadSessions(ctx); err != nil {
		log.Error("failed to load sessions: %v", err)
		return models.Snapshot{}, err
	}
	if snap.TotalReviews, err = r.loadCounter(ctx, counterTotalReviews); err != nil {
		log.Error("failed to load review counter: %v", err)
		return models.Snapshot{}, err
	}

	log.Debug("snapshot loaded: records=%d, sessions=%d", len(snap.Records), len(snap.Sessions))
	return snap, nil
}

func (r *stateRepository) loadRecords(ctx context.Context) (map[string]models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT item_id, next_review_at, interval_days, ease_factor, repetitions, last_reviewed_at
FROM review_records
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]models.Schedule)
	for rows.Next() {
		var (
			id   string
			s    models.Schedule
			last sql.NullTime
		)
		if err := rows.Scan(&id, &s.NextReviewAt, &s.IntervalDays, &s.EaseFactor, &s.Repetitions, &last); err != nil {
			return nil, err
		}
		s.NextReviewAt = utc(s.NextReviewAt)
		s.LastReviewedAt = timePtr(last)
		records[id] = s
	}
	return records, rows.Err()
}

func (r *stateRepository) loadStreak(ctx context.Context) (models.StreakState, error) {
	var (
		s    models.StreakState
		date clock.Date
	)
	err := r.db.QueryRowContext(ctx, `SELECT streak_count, last_review_date FROM streak_state WHERE id = ?`, streakRowID).
		Scan(&s.StreakCount, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StreakState{}, nil
	}
	if err != nil {
		return models.StreakState{}, err
	}
	s.LastReviewDate = date
	return s, nil
}

func (r *stateRepository) loadSessions(ctx context.Context) ([]models.StudySession, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, start_time, end_time, correct_count, total_count
FROM study_sessions
ORDER BY seq
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	index := map[string]int{}
	for rows.Next() {
		var (
			sess models.StudySession
			end  sql.NullTime
		)
		if err := rows.Scan(&sess.ID, &sess.StartTime, &end, &sess.CorrectCount, &sess.TotalCount); err != nil {
			return nil, err
		}
		sess.StartTime = utc(sess.StartTime)
		sess.EndTime = timePtr(end)
		sess.ItemIDs = []string{}
		index[sess.ID] = len(sessions)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx, `SELECT session_id, item_id FROM session_items ORDER BY session_id, position`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var sessionID, itemID string
		if err := itemRows.Scan(&sessionID, &itemID); err != nil {
			return nil, err
		}
		i, ok := index[sessionID]
		if !ok {
			continue
		}
		sessions[i].ItemIDs = append(sessions[i].ItemIDs, itemID)
	}
	return sessions, itemRows.Err()
}

func (r *stateRepository) loadCounter(ctx context.Context, name string) (int, error) {
	var v int
	err := r.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}
