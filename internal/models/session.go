package models

import (
	"time"

	"github.com/vytor/ayahrecall/internal/clock"
)

// StudySession logs one study run. EndTime is nil while the session is open.
type StudySession struct {
	ID           string     `json:"id"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	ItemIDs      []string   `json:"itemIds"`
	CorrectCount int        `json:"correctCount"`
	TotalCount   int        `json:"totalCount"`
}

// Open reports whether the session has not been ended yet.
func (s StudySession) Open() bool { return s.EndTime == nil }

// Clone returns a deep copy.
func (s StudySession) Clone() StudySession {
	out := s
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	out.ItemIDs = make([]string, len(s.ItemIDs))
	copy(out.ItemIDs, s.ItemIDs)
	return out
}

// StreakState counts consecutive calendar days with at least one review.
type StreakState struct {
	StreakCount    int        `json:"streakCount"`
	LastReviewDate clock.Date `json:"lastReviewDate"`
}
