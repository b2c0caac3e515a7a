package srs

import (
	"fmt"

	"github.com/vytor/ayahrecall/internal/models"
)

// Snapshot returns a deep copy of the persistable state. The open session,
// if any, is not included.
func (s *Scheduler) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.NewSnapshot()
	for id, rec := range s.records {
		snap.Records[id] = cloneRecord(rec).Schedule
	}
	snap.Streak = s.streak
	snap.Sessions = cloneSessions(s.sessions)
	snap.TotalReviews = s.totalReviews
	return snap
}

// Restore replaces the scheduler state with snap and drops any open session.
// Invalid snapshots are rejected without touching the current state.
func (s *Scheduler) Restore(snap models.Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}

	records := make(map[string]models.ReviewRecord, len(snap.Records))
	for id, sched := range snap.Records {
		records[id] = cloneRecord(models.ReviewRecord{ItemID: id, Schedule: sched})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.streak = snap.Streak
	s.sessions = cloneSessions(snap.Sessions)
	s.totalReviews = snap.TotalReviews
	s.current = nil
	return nil
}

// ValidateSnapshot checks the record and counter invariants.
func ValidateSnapshot(snap models.Snapshot) error {
	for id, sched := range snap.Records {
		switch {
		case id == "":
			return fmt.Errorf("%w: empty item id", ErrInvalidSnapshot)
		case sched.IntervalDays < 1:
			return fmt.Errorf("%w: item %s has interval %d", ErrInvalidSnapshot, id, sched.IntervalDays)
		case sched.EaseFactor < MinEaseFactor:
			return fmt.Errorf("%w: item %s has ease factor %.2f", ErrInvalidSnapshot, id, sched.EaseFactor)
		case sched.Repetitions < 0:
			return fmt.Errorf("%w: item %s has %d repetitions", ErrInvalidSnapshot, id, sched.Repetitions)
		}
	}
	if snap.Streak.StreakCount < 0 {
		return fmt.Errorf("%w: negative streak", ErrInvalidSnapshot)
	}
	if snap.TotalReviews < 0 {
		return fmt.Errorf("%w: negative review count", ErrInvalidSnapshot)
	}
	for _, sess := range snap.Sessions {
		if sess.EndTime == nil {
			return fmt.Errorf("%w: session %s is not closed", ErrInvalidSnapshot, sess.ID)
		}
		if sess.CorrectCount < 0 || sess.CorrectCount > sess.TotalCount {
			return fmt.Errorf("%w: session %s has %d/%d correct", ErrInvalidSnapshot, sess.ID, sess.CorrectCount, sess.TotalCount)
		}
	}
	return nil
}
