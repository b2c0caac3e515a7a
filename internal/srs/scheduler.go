// Package srs schedules memorization items with SM-2, tracks the daily
// review streak and keeps the study session log.
//
// A Scheduler owns all of its state behind one lock. It never performs I/O:
// callers persist it through Snapshot and Restore.
package srs

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
)

type Scheduler struct {
	mu    sync.RWMutex
	clock clock.Clock
	newID func() string

	records      map[string]models.ReviewRecord
	streak       models.StreakState
	totalReviews int
	current      *models.StudySession
	sessions     []models.StudySession
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithIDGenerator overrides how session ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Scheduler) {
		s.newID = fn
	}
}

// New creates an empty Scheduler reading time from c.
func New(c clock.Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    c,
		newID:    uuid.NewString,
		records:  make(map[string]models.ReviewRecord),
		sessions: []models.StudySession{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a default record for itemID unless one exists.
// It returns the current record and whether it was created.
func (s *Scheduler) Register(itemID string) (models.ReviewRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[itemID]; ok {
		return cloneRecord(rec), false
	}
	rec := NewRecord(itemID, s.clock.Now())
	s.records[itemID] = rec
	return cloneRecord(rec), true
}

// Review applies a quality rating to itemID, registering it first when unknown.
// The record, the streak and the review counter change together or not at all.
func (s *Scheduler) Review(itemID string, quality int) (models.ReviewRecord, error) {
	if !ValidQuality(quality) {
		return models.ReviewRecord{}, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	rec, ok := s.records[itemID]
	if !ok {
		rec = NewRecord(itemID, now)
	}

	rec = ApplyReview(rec, quality, now)
	s.records[itemID] = rec
	s.streak = AdvanceStreak(s.streak, clock.DateOf(now))
	s.totalReviews++

	return cloneRecord(rec), nil
}

// Record returns the record for itemID.
func (s *Scheduler) Record(itemID string) (models.ReviewRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[itemID]
	if !ok {
		return models.ReviewRecord{}, false
	}
	return cloneRecord(rec), true
}

// DueItems returns every record with NextReviewAt at or before now, oldest
// due first. Ties are broken by item id.
func (s *Scheduler) DueItems(now time.Time) []models.ReviewRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dueLocked(now)
}

func (s *Scheduler) dueLocked(now time.Time) []models.ReviewRecord {
	due := make([]models.ReviewRecord, 0)
	for _, rec := range s.records {
		if rec.Due(now) {
			due = append(due, cloneRecord(rec))
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].ItemID < due[j].ItemID
	})
	return due
}

// Len returns the number of registered items.
func (s *Scheduler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Scheduler) Streak() models.StreakState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streak
}

func (s *Scheduler) TotalReviews() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalReviews
}

func cloneRecord(rec models.ReviewRecord) models.ReviewRecord {
	if rec.LastReviewedAt != nil {
		t := *rec.LastReviewedAt
		rec.LastReviewedAt = &t
	}
	return rec
}
