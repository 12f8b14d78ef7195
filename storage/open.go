package storage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Open returns the Storage backend matching the scheme of uri:
//
//	mongodb://, mongodb+srv://  MongoDB (database unless the URI path names one)
//	postgres://, postgresql://  Postgres
//	sqlite://<path>, file:...   SQLite
//	libsql://, wss://           libsql / Turso
//	memory://                   in-memory map
func Open(ctx context.Context, uri, database string, logger *zap.Logger) (Storage, error) {
	var (
		store Storage
		err   error
	)

	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		store, err = openStore(NewMongoStorage(ctx, uri, database, logger))
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		store, err = openStore(NewSQLStorage(ctx, "postgres", uri, logger))
	case strings.HasPrefix(uri, "sqlite://"):
		store, err = openStore(NewSQLStorage(ctx, "sqlite", strings.TrimPrefix(uri, "sqlite://"), logger))
	case strings.HasPrefix(uri, "file:"):
		store, err = openStore(NewSQLStorage(ctx, "sqlite", uri, logger))
	case strings.HasPrefix(uri, "libsql://"), strings.HasPrefix(uri, "wss://"):
		store, err = openStore(NewSQLStorage(ctx, "libsql", uri, logger))
	case strings.HasPrefix(uri, "memory://"):
		store = NewInMemoryStorage(logger)
	default:
		err = fmt.Errorf("unsupported store URI scheme: %q", redact(uri))
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openStore keeps a typed nil pointer from leaking out of Open as a non-nil Storage.
func openStore[S Storage](s S, err error) (Storage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[:i+3] + "..."
	}
	if len(uri) > 8 {
		return uri[:8] + "..."
	}
	return uri
}
