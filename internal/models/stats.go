package models

import (
	"encoding/json"

	"github.com/vytor/ayahrecall/internal/clock"
)

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

// GoalTargets are the review counts a learner aims for per period.
type GoalTargets struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// DefaultGoalTargets mirrors the targets offered to a new learner.
var DefaultGoalTargets = GoalTargets{Daily: 20, Weekly: 100, Monthly: 400}

type Goal struct {
	Type    GoalType `json:"type"`
	Target  int      `json:"target"`
	Current int      `json:"current"`
	Period  string   `json:"period"`
}

// Percent returns progress towards the target, capped at 100.
func (g Goal) Percent() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := float64(g.Current) / float64(g.Target) * 100
	if p > 100 {
		return 100
	}
	return p
}

// MarshalJSON adds the derived percent to the encoded goal.
func (g Goal) MarshalJSON() ([]byte, error) {
	type goal Goal
	return json.Marshal(struct {
		goal
		Percent float64 `json:"percent"`
	}{goal(g), g.Percent()})
}

type DayActivity struct {
	Date    clock.Date `json:"date"`
	Reviews int        `json:"reviews"`
}

// Stats summarizes learner progress.
type Stats struct {
	Streak        int           `json:"streak"`
	TotalReviews  int           `json:"totalReviews"`
	Sessions      int           `json:"sessions"`
	Accuracy      int           `json:"accuracy"`
	Items         int           `json:"items"`
	DueNow        int           `json:"dueNow"`
	LastSevenDays []DayActivity `json:"lastSevenDays"`
	Goals         []Goal        `json:"goals"`
}
