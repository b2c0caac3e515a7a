package jobs

import (
	"github.com/vytor/ayahrecall/internal/repository"
	"github.com/vytor/ayahrecall/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	persistPool *worker.Pool
	source      worker.StateSource
	stateRepo   repository.StateRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation. persistPool
// should run a single worker so saves never reorder.
func NewWorkerQueue(
	persistPool *worker.Pool,
	source worker.StateSource,
	stateRepo repository.StateRepository,
) *WorkerQueue {
	return &WorkerQueue{
		persistPool: persistPool,
		source:      source,
		stateRepo:   stateRepo,
	}
}

// EnqueuePersist never blocks. A full queue drops the job; one already
// queued will save the newer state when it runs.
func (q *WorkerQueue) EnqueuePersist() bool {
	return q.persistPool.TrySubmit(&worker.PersistStateJob{
		Source: q.source,
		Repo:   q.stateRepo,
	})
}

var _ JobQueue = (*WorkerQueue)(nil)
