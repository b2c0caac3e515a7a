package models

import "time"

// Schedule is the per-item scheduling state persisted under the item's id.
type Schedule struct {
	NextReviewAt   time.Time  `json:"nextReviewAt"`
	IntervalDays   int        `json:"intervalDays"`
	EaseFactor     float64    `json:"easeFactor"`
	Repetitions    int        `json:"repetitions"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"`
}

// ReviewRecord is the scheduling state of one memorization item.
type ReviewRecord struct {
	ItemID string `json:"itemId"`
	Schedule
}

// Due reports whether the record is due at now.
func (r ReviewRecord) Due(now time.Time) bool {
	return !now.Before(r.NextReviewAt)
}

// ReviewLogEntry is one submitted rating and the schedule it produced.
type ReviewLogEntry struct {
	ID           int64     `json:"id"`
	ItemID       string    `json:"itemId"`
	Quality      int       `json:"quality"`
	IntervalDays int       `json:"intervalDays"`
	EaseFactor   float64   `json:"easeFactor"`
	ReviewedAt   time.Time `json:"reviewedAt"`
}
