package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ayahrecall/internal/models"
)

// MockStateRepository is a mock implementation of repository.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Save(ctx context.Context, snap models.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockStateRepository) Load(ctx context.Context) (models.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Snapshot), args.Error(1)
}
