package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go-link-shortener/types"
)

// MockStorage is a mock Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, link types.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStorage) IncrementVisits(ctx context.Context, slug string) (types.Link, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockStorage) GetLink(ctx context.Context, slug string) (types.Link, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
