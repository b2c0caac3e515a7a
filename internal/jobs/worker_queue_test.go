package jobs_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/ayahrecall/internal/jobs"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/testutil/mocks"
	"github.com/vytor/ayahrecall/internal/worker"
)

type counterSource struct {
	mu    sync.Mutex
	total int
}

func (s *counterSource) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := models.NewSnapshot()
	snap.TotalReviews = s.total
	return snap
}

func TestWorkerQueue_EnqueuePersist(t *testing.T) {
	src := &counterSource{total: 3}
	repo := new(mocks.MockStateRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s models.Snapshot) bool {
		return s.TotalReviews == 3
	})).Return(nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	q := jobs.NewWorkerQueue(pool, src, repo)

	assert.True(t, q.EnqueuePersist())
	pool.Stop()

	repo.AssertExpectations(t)
	assert.False(t, q.EnqueuePersist(), "stopped pool rejects jobs")
}
