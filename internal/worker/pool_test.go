package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordJob struct {
	name string
	mu   *sync.Mutex
	ran  *[]string
	err  error
}

func (j recordJob) Name() string { return j.name }

func (j recordJob) Run(context.Context) error {
	j.mu.Lock()
	*j.ran = append(*j.ran, j.name)
	j.mu.Unlock()
	return j.err
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j blockingJob) Name() string { return "blocking" }

func (j blockingJob) Run(context.Context) error {
	close(j.started)
	<-j.release
	return nil
}

func TestPool_SingleWorkerRunsInOrderAndDrainsOnStop(t *testing.T) {
	var (
		mu  sync.Mutex
		ran []string
	)
	p := NewPool(1, 8)
	p.Start(context.Background())

	for _, name := range []string{"a", "b", "c"} {
		require.True(t, p.TrySubmit(recordJob{name: name, mu: &mu, ran: &ran}))
	}
	require.True(t, p.TrySubmit(recordJob{name: "d", mu: &mu, ran: &ran, err: errors.New("boom")}))
	p.Stop()

	assert.Equal(t, []string{"a", "b", "c", "d"}, ran)
}

func TestPool_TrySubmitDropsWhenFull(t *testing.T) {
	var (
		mu  sync.Mutex
		ran []string
	)
	p := NewPool(1, 1)
	p.Start(context.Background())

	block := blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.True(t, p.TrySubmit(block))
	<-block.started

	assert.True(t, p.TrySubmit(recordJob{name: "queued", mu: &mu, ran: &ran}))
	assert.False(t, p.TrySubmit(recordJob{name: "dropped", mu: &mu, ran: &ran}))

	close(block.release)
	p.Stop()
	assert.Equal(t, []string{"queued"}, ran)
}

func TestPool_RejectsAfterStop(t *testing.T) {
	var (
		mu  sync.Mutex
		ran []string
	)
	p := NewPool(0, 0)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	assert.False(t, p.TrySubmit(recordJob{name: "late", mu: &mu, ran: &ran}))
	assert.Empty(t, ran)
}
