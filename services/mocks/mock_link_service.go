package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go-link-shortener/types"
)

// MockLinkService is a mock LinkService interface
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) CreateLink(ctx context.Context, url string) (types.Link, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockLinkService) ResolveLink(ctx context.Context, code string) (types.Link, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockLinkService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
