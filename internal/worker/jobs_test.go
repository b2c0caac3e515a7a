package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/ayahrecall/internal/models"
	"github.com/vytor/ayahrecall/internal/testutil/mocks"
	"github.com/vytor/ayahrecall/internal/worker"
)

type staticSource struct {
	snap  models.Snapshot
	calls int
}

func (s *staticSource) Snapshot() models.Snapshot {
	s.calls++
	return s.snap
}

func TestPersistStateJob_SavesSnapshotAtRunTime(t *testing.T) {
	src := &staticSource{snap: models.NewSnapshot()}
	repo := new(mocks.MockStateRepository)
	job := &worker.PersistStateJob{Source: src, Repo: repo}

	src.snap.TotalReviews = 7
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s models.Snapshot) bool {
		return s.TotalReviews == 7
	})).Return(nil).Once()

	assert.Equal(t, "persist_state", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, src.calls)
	repo.AssertExpectations(t)
}

func TestPersistStateJob_WrapsSaveError(t *testing.T) {
	cause := errors.New("disk I/O error")
	repo := new(mocks.MockStateRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(cause)

	job := &worker.PersistStateJob{Source: &staticSource{snap: models.NewSnapshot()}, Repo: repo}
	err := job.Run(context.Background())
	assert.ErrorIs(t, err, cause)
}
