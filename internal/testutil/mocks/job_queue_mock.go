package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueuePersist() bool {
	args := m.Called()
	return args.Bool(0)
}
