package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // libsql driver
	"go-link-shortener/types"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect selects the schema and migration driver of a SQLStorage.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const pgUniqueViolation = "23505"

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	sqlx.BindDriver("libsql", sqlx.QUESTION)
}

// SQLStorage implements the Storage interface on a relational database
// (Postgres, SQLite or libsql).
type SQLStorage struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *zap.Logger
}

// NewSQLStorage opens the database with the given driver, applies the
// embedded migrations and returns the store.
func NewSQLStorage(ctx context.Context, driverName, dsn string, logger *zap.Logger) (*SQLStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialect := DialectSQLite
	if driverName == "postgres" {
		dialect = DialectPostgres
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driverName, err)
	}
	if dialect == DialectSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
	}

	s := &SQLStorage{db: db, dialect: dialect, logger: logger}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Connected to SQL store", zap.String("driver", driverName))
	return s, nil
}

func (s *SQLStorage) runMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(s.dialect))
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	var driver database.Driver
	switch s.dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(s.db.DB, &postgres.Config{})
	default:
		driver, err = migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(s.dialect), driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	s.logger.Debug("Database migrations applied", zap.String("dialect", string(s.dialect)))
	return nil
}

// Create inserts a new link row.
func (s *SQLStorage) Create(ctx context.Context, link types.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO links (slug, url, created_at, visit_count) VALUES (:slug, :url, :created_at, :visit_count)`,
		link)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("Attempt to create duplicate slug", zap.String("slug", link.Slug))
			return ErrSlugExists
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// IncrementVisits bumps visit_count in a single UPDATE ... RETURNING statement.
func (s *SQLStorage) IncrementVisits(ctx context.Context, slug string) (types.Link, error) {
	query := s.db.Rebind(`UPDATE links SET visit_count = visit_count + 1 WHERE slug = ?
		RETURNING slug, url, created_at, visit_count`)

	var link types.Link
	if err := s.db.GetContext(ctx, &link, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Link{}, ErrLinkNotFound
		}
		return types.Link{}, fmt.Errorf("increment visits: %w", err)
	}
	return link, nil
}

// GetLink finds a link by slug.
func (s *SQLStorage) GetLink(ctx context.Context, slug string) (types.Link, error) {
	query := s.db.Rebind(`SELECT slug, url, created_at, visit_count FROM links WHERE slug = ?`)

	var link types.Link
	if err := s.db.GetContext(ctx, &link, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Link{}, ErrLinkNotFound
		}
		return types.Link{}, fmt.Errorf("find link: %w", err)
	}
	return link, nil
}

// Ping verifies the database connection.
func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *SQLStorage) Close(context.Context) error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	// libsql reports constraint failures as plain errors.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
