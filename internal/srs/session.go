package srs

import (
	"fmt"

	"github.com/vytor/ayahrecall/internal/models"
)

// Sessions follow a strict Closed -> Open -> Closed cycle. Misuse is reported
// with ErrSessionOpen or ErrNoOpenSession and leaves state unchanged.

// StartSession opens a new study session stamped with the current time.
func (s *Scheduler) StartSession() (models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return models.StudySession{}, fmt.Errorf("%w: %s", ErrSessionOpen, s.current.ID)
	}
	s.current = &models.StudySession{
		ID:        s.newID(),
		StartTime: s.clock.Now(),
		ItemIDs:   []string{},
	}
	return s.current.Clone(), nil
}

// RecordReview appends itemID to the open session.
func (s *Scheduler) RecordReview(itemID string, correct bool) (models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.StudySession{}, ErrNoOpenSession
	}
	s.current.ItemIDs = append(s.current.ItemIDs, itemID)
	s.current.TotalCount++
	if correct {
		s.current.CorrectCount++
	}
	return s.current.Clone(), nil
}

// EndSession stamps the open session's end time and moves it to the log.
func (s *Scheduler) EndSession() (models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.StudySession{}, ErrNoOpenSession
	}
	end := s.clock.Now()
	closed := s.current.Clone()
	closed.EndTime = &end
	s.sessions = append(s.sessions, closed)
	s.current = nil
	return closed.Clone(), nil
}

// CurrentSession returns the open session, if any.
func (s *Scheduler) CurrentSession() (models.StudySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.StudySession{}, false
	}
	return s.current.Clone(), true
}

// Sessions returns the closed sessions in the order they were ended.
func (s *Scheduler) Sessions() []models.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSessions(s.sessions)
}

func cloneSessions(in []models.StudySession) []models.StudySession {
	out := make([]models.StudySession, len(in))
	for i, sess := range in {
		out[i] = sess.Clone()
	}
	return out
}
