package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ayahrecall/internal/content"
)

// MockContentProvider is a mock implementation of content.Provider
type MockContentProvider struct {
	mock.Mock
}

func (m *MockContentProvider) Verse(ctx context.Context, itemID, edition string) (content.Verse, error) {
	args := m.Called(ctx, itemID, edition)
	return args.Get(0).(content.Verse), args.Error(1)
}
