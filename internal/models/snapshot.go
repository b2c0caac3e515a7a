package models

// Snapshot is the complete persisted scheduler state.
type Snapshot struct {
	Records      map[string]Schedule `json:"records"`
	Streak       StreakState         `json:"streak"`
	Sessions     []StudySession      `json:"sessions"`
	TotalReviews int                 `json:"totalReviews"`
}

// NewSnapshot returns an empty snapshot with initialized collections.
func NewSnapshot() Snapshot {
	return Snapshot{
		Records:  make(map[string]Schedule),
		Sessions: []StudySession{},
	}
}
