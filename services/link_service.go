package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-link-shortener/slug"
	"go-link-shortener/storage"
	"go-link-shortener/types"
	"go.uber.org/zap"
)

var (
	// ErrInvalidURL is returned when the URL is empty or does not start with http.
	ErrInvalidURL = errors.New("invalid URL: must start with http(s)")
	// ErrLinkNotFound is returned when no link matches the slug.
	ErrLinkNotFound = errors.New("link not found")
	// ErrSlugSpaceExhausted is returned when every generated slug was already taken.
	ErrSlugSpaceExhausted = errors.New("could not allocate a unique slug")
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrLinkNotFound):
		return ErrLinkNotFound
	default:
		return fmt.Errorf("storage: %w", err)
	}
}

// LinkService creates and resolves short links.
type LinkService interface {
	CreateLink(ctx context.Context, url string) (types.Link, error)
	ResolveLink(ctx context.Context, code string) (types.Link, error)
	Ping(ctx context.Context) error
}

type linkService struct {
	store       storage.Storage
	maxAttempts int
	generate    func() (string, error)
	logger      *zap.Logger
}

// NewLinkService returns a LinkService backed by store. maxAttempts bounds
// the number of slugs tried when a generated slug is already taken.
func NewLinkService(store storage.Storage, maxAttempts int, logger *zap.Logger) LinkService {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &linkService{
		store:       store,
		maxAttempts: maxAttempts,
		generate:    slug.Generate,
		logger:      logger,
	}
}

func (s *linkService) CreateLink(ctx context.Context, url string) (types.Link, error) {
	if url == "" || !strings.HasPrefix(url, "http") {
		return types.Link{}, ErrInvalidURL
	}

	createdAt := time.Now().UTC()
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return types.Link{}, fmt.Errorf("generate slug: %w", err)
		}

		link := types.Link{
			Slug:       code,
			URL:        url,
			CreatedAt:  createdAt,
			VisitCount: 0,
		}

		err = s.store.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, storage.ErrSlugExists) {
			return types.Link{}, handleStorageError(err)
		}

		s.logger.Warn("Slug collision, regenerating",
			zap.String("slug", code),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", s.maxAttempts))
	}

	return types.Link{}, ErrSlugSpaceExhausted
}

func (s *linkService) ResolveLink(ctx context.Context, code string) (types.Link, error) {
	if !slug.Valid(code) {
		return types.Link{}, ErrLinkNotFound
	}

	link, err := s.store.IncrementVisits(ctx, code)
	if err != nil {
		return types.Link{}, handleStorageError(err)
	}
	return link, nil
}

func (s *linkService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return handleStorageError(err)
	}
	return nil
}
