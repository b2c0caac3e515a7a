package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant. Calendar dates are taken in the
// location of the returned time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and reports it in loc.
type System struct {
	loc *time.Location
}

// NewSystem returns a System clock. A nil location means time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time { return time.Now().In(s.loc) }


// Fixed is a manually advanced clock for tests and replays.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// AdvanceDays moves the clock forward by n calendar days, keeping the wall time.
func (f *Fixed) AdvanceDays(n int) {
	f.mu.Lock()
	f.now = f.now.AddDate(0, 0, n)
	f.mu.Unlock()
}
