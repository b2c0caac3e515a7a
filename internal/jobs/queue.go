package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueuePersist schedules a save of the current state. It reports
	// false when the job was dropped.
	EnqueuePersist() bool
}
