package srs

import (
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
)

// AdvanceStreak applies a review made on today to the streak.
// Comparison is by calendar date so two reviews an hour apart on the same
// day never count twice, and 23:59 followed by 00:01 is a new day.
func AdvanceStreak(s models.StreakState, today clock.Date) models.StreakState {
	switch {
	case s.LastReviewDate == today:
		return s
	case !s.LastReviewDate.IsZero() && s.LastReviewDate.AddDays(1) == today:
		s.StreakCount++
	default:
		s.StreakCount = 1
	}
	s.LastReviewDate = today
	return s
}
