package srs

import (
	"math"
	"time"

	"github.com/vytor/ayahrecall/internal/models"
)

const (
	MinQuality = 0
	MaxQuality = 5
	// PassingQuality is the lowest rating that counts as a successful recall.
	PassingQuality = 3

	DefaultIntervalDays = 1
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
)

// NewRecord returns the record an item gets on first exposure.
func NewRecord(itemID string, now time.Time) models.ReviewRecord {
	return models.ReviewRecord{
		ItemID: itemID,
		Schedule: models.Schedule{
			NextReviewAt: now,
			IntervalDays: DefaultIntervalDays,
			EaseFactor:   DefaultEaseFactor,
			Repetitions:  0,
		},
	}
}

// ValidQuality reports whether q is on the 0-5 rating scale.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// Passed reports whether q is a qualifying review rather than a lapse.
func Passed(q int) bool {
	return q >= PassingQuality
}

// ApplyReview updates a record using the SM-2 algorithm.
// quality: 0-2 lapse, 3=hard, 4=good, 5=perfect. The caller validates quality.
func ApplyReview(rec models.ReviewRecord, quality int, now time.Time) models.ReviewRecord {
	if !Passed(quality) {
		// Lapse keeps the ease factor.
		rec.Repetitions = 0
		rec.IntervalDays = 1
	} else {
		rec.Repetitions++
		switch rec.Repetitions {
		case 1:
			rec.IntervalDays = 1
		case 2:
			rec.IntervalDays = 6
		default:
			rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * rec.EaseFactor))
		}

		q := float64(MaxQuality - quality)
		ef := rec.EaseFactor + (0.1 - q*(0.08+q*0.02))
		if ef < MinEaseFactor {
			ef = MinEaseFactor
		}
		rec.EaseFactor = ef
	}

	reviewed := now
	rec.LastReviewedAt = &reviewed
	rec.NextReviewAt = now.AddDate(0, 0, rec.IntervalDays)
	return rec
}
