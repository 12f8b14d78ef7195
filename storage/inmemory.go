package storage

import (
	"context"
	"sync"
	"time"

	"go-link-shortener/types"
	"go.uber.org/zap"
)

// InMemoryStorage implements the Storage interface using an in-memory map.
type InMemoryStorage struct {
	links  map[string]types.Link
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewInMemoryStorage creates and returns a new InMemoryStorage instance.
func NewInMemoryStorage(logger *zap.Logger) *InMemoryStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		links:  make(map[string]types.Link),
		logger: logger,
	}
}

// Create adds a new link to the storage.
func (s *InMemoryStorage) Create(ctx context.Context, link types.Link) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Create operation cancelled", zap.String("slug", link.Slug))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.links[link.Slug]; exists {
			s.logger.Warn("Attempt to create duplicate slug", zap.String("slug", link.Slug))
			return ErrSlugExists
		}

		if link.CreatedAt.IsZero() {
			link.CreatedAt = time.Now().UTC()
		}
		s.links[link.Slug] = link
		s.logger.Debug("Link created",
			zap.String("slug", link.Slug),
			zap.String("url", link.URL),
			zap.Time("createdAt", link.CreatedAt))
		return nil
	}
}

// IncrementVisits bumps the visit counter of a link and returns the updated record.
func (s *InMemoryStorage) IncrementVisits(ctx context.Context, slug string) (types.Link, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("IncrementVisits operation cancelled", zap.String("slug", slug))
		return types.Link{}, ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		link, exists := s.links[slug]
		if !exists {
			return types.Link{}, ErrLinkNotFound
		}
		link.VisitCount++
		s.links[slug] = link
		return link, nil
	}
}

// GetLink retrieves the link for a given slug without touching its counter.
func (s *InMemoryStorage) GetLink(ctx context.Context, slug string) (types.Link, error) {
	select {
	case <-ctx.Done():
		return types.Link{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if link, exists := s.links[slug]; exists {
			return link, nil
		}
		return types.Link{}, ErrLinkNotFound
	}
}

// Ping always succeeds unless the context is done.
func (s *InMemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStorage) Close(context.Context) error {
	return nil
}

// Len returns the number of stored links.
func (s *InMemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
