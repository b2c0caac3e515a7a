package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/models"
)

const activityDays = 7

// Stats summarizes progress from the closed session log. Activity and goal
// windows are calendar periods containing today.
func (s *Scheduler) Stats(targets models.GoalTargets) models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	today := clock.DateOf(now)
	loc := now.Location()

	st := models.Stats{
		Streak:       s.streak.StreakCount,
		TotalReviews: s.totalReviews,
		Sessions:     len(s.sessions),
		Items:        len(s.records),
		DueNow:       len(s.dueLocked(now)),
	}

	var correct, total int
	perDay := make(map[clock.Date]int)
	for _, sess := range s.sessions {
		correct += sess.CorrectCount
		total += sess.TotalCount
		perDay[sessionDate(sess, loc)] += sess.TotalCount
	}
	if total > 0 {
		st.Accuracy = int(math.Round(float64(correct) / float64(total) * 100))
	}

	st.LastSevenDays = make([]models.DayActivity, 0, activityDays)
	for i := activityDays - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		st.LastSevenDays = append(st.LastSevenDays, models.DayActivity{Date: d, Reviews: perDay[d]})
	}

	st.Goals = goalProgress(targets, today, perDay)
	return st
}

func sessionDate(sess models.StudySession, loc *time.Location) clock.Date {
	return clock.DateOf(sess.StartTime.In(loc))
}

func goalProgress(targets models.GoalTargets, today clock.Date, perDay map[clock.Date]int) []models.Goal {
	year, week := today.ISOWeek()
	daily := models.Goal{Type: models.GoalDaily, Target: targets.Daily, Period: today.String()}
	weekly := models.Goal{Type: models.GoalWeekly, Target: targets.Weekly, Period: fmt.Sprintf("%04d-W%02d", year, week)}
	monthly := models.Goal{Type: models.GoalMonthly, Target: targets.Monthly, Period: fmt.Sprintf("%04d-%02d", today.Year, int(today.Month))}

	for d, n := range perDay {
		if d == today {
			daily.Current += n
		}
		if y, w := d.ISOWeek(); y == year && w == week {
			weekly.Current += n
		}
		if d.Year == today.Year && d.Month == today.Month {
			monthly.Current += n
		}
	}
	return []models.Goal{daily, weekly, monthly}
}
