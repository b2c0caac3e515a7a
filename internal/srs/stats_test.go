package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/srs"
)

func runSession(t *testing.T, s *srs.Scheduler, results ...bool) {
	t.Helper()
	_, err := s.StartSession()
	require.NoError(t, err)
	for i, ok := range results {
		_, err := s.RecordReview("1:1", ok)
		require.NoError(t, err, "review %d", i)
	}
	_, err = s.EndSession()
	require.NoError(t, err)
}

func TestStats_Empty(t *testing.T) {
	s := srs.New(clock.NewFixed(baseTime))

	st := s.Stats(models.DefaultGoalTargets)

	assert.Equal(t, 0, st.Accuracy)
	assert.Equal(t, 0, st.Sessions)
	require.Len(t, st.LastSevenDays, 7)
	assert.Equal(t, clock.DateOf(baseTime), st.LastSevenDays[6].Date)
	assert.Equal(t, clock.DateOf(baseTime).AddDays(-6), st.LastSevenDays[0].Date)
	require.Len(t, st.Goals, 3)
	for _, g := range st.Goals {
		assert.Equal(t, 0, g.Current)
	}
}

func TestStats_AccuracyActivityAndGoals(t *testing.T) {
	// Sunday 2024-03-10; ISO week 10 runs Monday 03-04 .. Sunday 03-10.
	c := clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	s := srs.New(c)

	runSession(t, s, true, false) // 03-01: same month, earlier week
	c.Set(time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC))
	runSession(t, s, true) // previous month
	c.Set(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	runSession(t, s, true, true, true) // same week
	c.Set(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	runSession(t, s, true, false, false, true) // today

	s.Register("1:1")
	s.Register("1:2")

	st := s.Stats(models.GoalTargets{Daily: 2, Weekly: 10, Monthly: 100})

	assert.Equal(t, 4, st.Sessions)
	assert.Equal(t, 70, st.Accuracy) // 7 of 10
	assert.Equal(t, 2, st.Items)
	assert.Equal(t, 2, st.DueNow)

	byDate := map[clock.Date]int{}
	for _, a := range st.LastSevenDays {
		byDate[a.Date] = a.Reviews
	}
	assert.Equal(t, 4, byDate[clock.Date{Year: 2024, Month: time.March, Day: 10}])
	assert.Equal(t, 3, byDate[clock.Date{Year: 2024, Month: time.March, Day: 5}])
	assert.NotContains(t, byDate, clock.Date{Year: 2024, Month: time.March, Day: 1})

	goals := map[models.GoalType]models.Goal{}
	for _, g := range st.Goals {
		goals[g.Type] = g
	}
	assert.Equal(t, 4, goals[models.GoalDaily].Current)
	assert.Equal(t, "2024-03-10", goals[models.GoalDaily].Period)
	assert.Equal(t, 100.0, goals[models.GoalDaily].Percent(), "capped at 100")
	assert.Equal(t, 7, goals[models.GoalWeekly].Current)
	assert.Equal(t, "2024-W10", goals[models.GoalWeekly].Period)
	assert.Equal(t, 9, goals[models.GoalMonthly].Current)
	assert.Equal(t, "2024-03", goals[models.GoalMonthly].Period)
}

func TestStats_SessionDatesFollowClockLocation(t *testing.T) {
	tz := time.FixedZone("UTC+5", 5*60*60)
	c := clock.NewFixed(time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC).In(tz))
	s := srs.New(c)

	runSession(t, s, true)

	st := s.Stats(models.DefaultGoalTargets)
	assert.Equal(t, clock.Date{Year: 2024, Month: time.March, Day: 11}, st.LastSevenDays[6].Date)
	assert.Equal(t, 1, st.LastSevenDays[6].Reviews)
}
