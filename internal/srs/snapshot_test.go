package srs_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/srs"
)

func populated(t *testing.T) (*srs.Scheduler, *clock.Fixed) {
	t.Helper()
	c := clock.NewFixed(baseTime)
	s := srs.New(c)

	s.Register("1:1")
	_, err := s.StartSession()
	require.NoError(t, err)
	_, err = s.Review("2:255", 5)
	require.NoError(t, err)
	_, err = s.RecordReview("2:255", true)
	require.NoError(t, err)
	c.Advance(5 * time.Minute)
	_, err = s.EndSession()
	require.NoError(t, err)
	return s, c
}

func TestSnapshot_RestoreIntoFreshScheduler(t *testing.T) {
	s, c := populated(t)
	snap := s.Snapshot()

	require.Len(t, snap.Records, 2)
	assert.Nil(t, snap.Records["1:1"].LastReviewedAt)
	assert.Equal(t, 1, snap.TotalReviews)
	assert.Equal(t, 1, snap.Streak.StreakCount)
	require.Len(t, snap.Sessions, 1)

	restored := srs.New(c)
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, s.DueItems(c.Now()), restored.DueItems(c.Now()))
	rec, ok := restored.Record("2:255")
	require.True(t, ok)
	assert.Equal(t, "2:255", rec.ItemID)
}

func TestSnapshot_IsDetached(t *testing.T) {
	s, _ := populated(t)
	snap := s.Snapshot()

	sched := snap.Records["2:255"]
	sched.IntervalDays = 500
	snap.Records["2:255"] = sched
	snap.Sessions[0].ItemIDs[0] = "mutated"

	again := s.Snapshot()
	assert.Equal(t, 1, again.Records["2:255"].IntervalDays)
	assert.Equal(t, "2:255", again.Sessions[0].ItemIDs[0])
}

func TestSnapshot_JSONShape(t *testing.T) {
	s, _ := populated(t)

	b, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.ElementsMatch(t, []string{"records", "streak", "sessions", "totalReviews"}, keys(raw))

	var records map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["records"], &records))
	assert.ElementsMatch(t,
		[]string{"nextReviewAt", "intervalDays", "easeFactor", "repetitions", "lastReviewedAt"},
		keys(records["2:255"]))
	assert.Equal(t, "null", string(records["1:1"]["lastReviewedAt"]))

	assert.JSONEq(t, `{"streakCount":1,"lastReviewDate":"2024-03-10"}`, string(raw["streak"]))

	var sessions []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["sessions"], &sessions))
	assert.ElementsMatch(t,
		[]string{"id", "startTime", "endTime", "itemIds", "correctCount", "totalCount"},
		keys(sessions[0]))

	var back models.Snapshot
	require.NoError(t, json.Unmarshal(b, &back))
	fresh := srs.New(clock.NewFixed(baseTime))
	require.NoError(t, fresh.Restore(back))
	assert.Equal(t, 1, fresh.TotalReviews())
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestRestore_RejectsInvalidSnapshots(t *testing.T) {
	valid := func() models.Snapshot {
		snap := models.NewSnapshot()
		snap.Records["1:1"] = models.Schedule{NextReviewAt: baseTime, IntervalDays: 1, EaseFactor: 2.5}
		return snap
	}
	end := baseTime.Add(time.Hour)

	tests := []struct {
		name   string
		mutate func(*models.Snapshot)
	}{
		{"ease below floor", func(s *models.Snapshot) {
			s.Records["1:1"] = models.Schedule{IntervalDays: 1, EaseFactor: 1.2}
		}},
		{"zero interval", func(s *models.Snapshot) {
			s.Records["1:1"] = models.Schedule{IntervalDays: 0, EaseFactor: 2.5}
		}},
		{"negative repetitions", func(s *models.Snapshot) {
			s.Records["1:1"] = models.Schedule{IntervalDays: 1, EaseFactor: 2.5, Repetitions: -1}
		}},
		{"empty id", func(s *models.Snapshot) {
			s.Records[""] = models.Schedule{IntervalDays: 1, EaseFactor: 2.5}
		}},
		{"negative total", func(s *models.Snapshot) { s.TotalReviews = -1 }},
		{"open session", func(s *models.Snapshot) {
			s.Sessions = append(s.Sessions, models.StudySession{ID: "x"})
		}},
		{"more correct than total", func(s *models.Snapshot) {
			s.Sessions = append(s.Sessions, models.StudySession{ID: "x", EndTime: &end, CorrectCount: 2, TotalCount: 1})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := populated(t)
			before := s.Snapshot()

			snap := valid()
			tt.mutate(&snap)
			err := s.Restore(snap)

			require.Error(t, err)
			assert.True(t, errors.Is(err, srs.ErrInvalidSnapshot))
			assert.Equal(t, before, s.Snapshot(), "state untouched")
		})
	}
}

func TestRestore_DropsOpenSession(t *testing.T) {
	s, _ := populated(t)
	_, err := s.StartSession()
	require.NoError(t, err)

	require.NoError(t, s.Restore(models.NewSnapshot()))

	_, open := s.CurrentSession()
	assert.False(t, open)
	assert.Equal(t, 0, s.Len())
}
