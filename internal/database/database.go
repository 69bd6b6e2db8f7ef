package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotConfigured is returned when no connection string was provided.
// Callers must treat it differently from a failed query.
var ErrNotConfigured = errors.New("database not configured")

// Pool is the subset of pgxpool.Pool used by the services. pgxmock pools
// satisfy it as well.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type DB struct {
	Pool Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, ErrNotConfigured
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}

// Lazy opens the pool on first use and hands out the same handle afterwards.
// An empty URL yields ErrNotConfigured on every call.
type Lazy struct {
	url  string
	once sync.Once
	db   *DB
	err  error
}

func NewLazy(databaseURL string) *Lazy {
	return &Lazy{url: databaseURL}
}

// FromDB wraps an already open handle, mostly for tests.
func FromDB(db *DB) *Lazy {
	l := &Lazy{db: db}
	l.once.Do(func() {})
	if db == nil {
		l.err = ErrNotConfigured
	}
	return l
}

func (l *Lazy) Configured() bool {
	if l == nil {
		return false
	}
	return l.url != "" || l.db != nil
}

func (l *Lazy) Get(ctx context.Context) (*DB, error) {
	if l == nil {
		return nil, ErrNotConfigured
	}
	l.once.Do(func() {
		l.db, l.err = New(ctx, l.url)
	})
	return l.db, l.err
}

func (l *Lazy) Close() {
	if l == nil {
		return
	}
	l.db.Close()
}
