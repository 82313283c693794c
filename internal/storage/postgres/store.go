// Package postgres implements the party store, task store and visit counter
// on PostgreSQL through a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/storage"
)

const foreignKeyViolation = "23503"

// options holds the pool settings applied on Open.
type options struct {
	maxConns       int32
	connectTimeout time.Duration
	logger         *slog.Logger
	logQueries     bool
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger used by the store and the query tracer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxConns sets the maximum number of pooled connections.
func WithMaxConns(n int32) Option {
	return func(o *options) {
		o.maxConns = n
	}
}

// WithConnectTimeout bounds connecting and migrating on Open.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) {
		o.connectTimeout = d
	}
}

// WithLogQueries logs every statement at debug level.
func WithLogQueries(enable bool) Option {
	return func(o *options) {
		o.logQueries = enable
	}
}

// Store wraps a pgx pool.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to databaseURL, verifies the connection and runs migrations.
func Open(databaseURL string, opts ...Option) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("empty database url")
	}

	o := &options{
		maxConns:       10,
		connectTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	cfg.MaxConns = o.maxConns
	if o.logQueries {
		cfg.ConnConfig.Tracer = &queryLogger{logger: o.logger}
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{pool: pool, logger: o.logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return storage.Failure("ping postgres", s.pool.Ping(ctx))
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS parties (
			id          BIGSERIAL PRIMARY KEY,
			first_name  TEXT NOT NULL,
			second_name TEXT NOT NULL,
			mobile1     TEXT NOT NULL,
			mobile2     TEXT,
			email       TEXT NOT NULL DEFAULT '',
			address     TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL CHECK (status IN ('active', 'inactive')),
			type        TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id              BIGSERIAL PRIMARY KEY,
			job_description TEXT NOT NULL,
			priority        TEXT NOT NULL CHECK (priority IN ('HIGH', 'NORMAL', 'LOW')),
			notify_via      TEXT NOT NULL CHECK (notify_via IN ('SMS', 'WA', 'EMAIL')),
			party_id        BIGINT NOT NULL REFERENCES parties(id) ON DELETE RESTRICT,
			created_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id    SMALLINT PRIMARY KEY CHECK (id = 1),
			count BIGINT NOT NULL CHECK (count >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parties_first_name ON parties(first_name)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_party ON tasks(party_id)`,
	}
	for i, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func (s *Store) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.logger.Warn("rollback failed", slog.String("error", err.Error()))
	}
}

// queryLogger is a pgx.QueryTracer that logs statements and their outcome.
type queryLogger struct {
	logger *slog.Logger
}

type queryStartKey struct{}

type queryStart struct {
	sql   string
	start time.Time
}

func (q *queryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, start: time.Now()})
}

func (q *queryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qs, _ := ctx.Value(queryStartKey{}).(queryStart)
	attrs := []any{
		slog.String("sql", qs.sql),
		slog.Duration("duration", time.Since(qs.start)),
		slog.String("tag", data.CommandTag.String()),
	}
	if data.Err != nil {
		q.logger.WarnContext(ctx, "query failed", append(attrs, slog.String("error", data.Err.Error()))...)
		return
	}
	q.logger.DebugContext(ctx, "query", attrs...)
}
