// Package storage provides the link store contract, its backends and common errors.
package storage

import (
	"context"
	"errors"

	"go-link-shortener/types"
)

// Common errors returned by storage operations.
var (
	ErrSlugExists   = errors.New("slug already exists")
	ErrLinkNotFound = errors.New("link not found")
)

// Storage interface defines the methods for link storage operations.
//
// IncrementVisits must be a single atomic update-and-fetch in every
// implementation so that concurrent resolutions never lose an increment.
type Storage interface {
	Create(ctx context.Context, link types.Link) error
	IncrementVisits(ctx context.Context, slug string) (types.Link, error)
	GetLink(ctx context.Context, slug string) (types.Link, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
