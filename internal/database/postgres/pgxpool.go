package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"numguru/internal/config"
	"numguru/internal/database"
	"numguru/internal/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	codeUniqueViolation = "23505"

	connectAttempts    = 3
	slowQueryThreshold = 250 * time.Millisecond
)

// Pool adapts a pgx pool to database.DB.
type Pool struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// DSN prefers DATABASE_URL and otherwise assembles a keyword/value string.
func DSN(cfg config.DatabaseConfig) string {
	if u := strings.TrimSpace(cfg.DatabaseURL); u != "" {
		return u
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(cfg.DBHost),
		strings.TrimSpace(cfg.DBPort),
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBName),
		strings.TrimSpace(cfg.DBSSLMode),
	)
}

// Connect opens the pool and waits for the server, retrying the first ping
// with a growing pause while ctx allows.
func Connect(ctx context.Context, cfg config.DatabaseConfig, l *zap.Logger) (*Pool, error) {
	l = logger.OrNop(l)

	pcfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pcfg.ConnConfig.Tracer = &queryLogger{logger: l.Named("pgx"), slow: slowQueryThreshold}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}

	if err := pingWithRetry(ctx, p, l); err != nil {
		p.Close()
		return nil, err
	}

	l.Info("postgres connected",
		zap.String("host", pcfg.ConnConfig.Host),
		zap.String("database", pcfg.ConnConfig.Database),
		zap.Int32("max_conns", pcfg.MaxConns),
	)
	return &Pool{pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
	return pcfg, nil
}

func pingWithRetry(ctx context.Context, p *pgxpool.Pool, l *zap.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt*attempt) * 250 * time.Millisecond
			l.Warn("postgres not ready, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("ping postgres: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = p.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("ping postgres after %d attempts: %w", connectAttempts, lastErr)
}

func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return database.ErrClosed
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return err
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if p == nil || p.pool == nil {
		return 0, database.ErrClosed
	}
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if p == nil || p.pool == nil {
		return errRow{err: database.ErrClosed}
	}
	return row{row: p.pool.QueryRow(ctx, query, args...)}
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if p == nil || p.pool == nil {
		return nil, database.ErrClosed
	}
	t, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return tx{tx: t}, nil
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

type tx struct {
	tx pgx.Tx
}

func (t tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func (t tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return row{row: t.tx.QueryRow(ctx, query, args...)}
}

func (t tx) Commit(ctx context.Context) error {
	return translate(t.tx.Commit(ctx))
}

func (t tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

type row struct {
	row pgx.Row
}

func (r row) Scan(dest ...any) error {
	return translate(r.row.Scan(dest...))
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

// translate maps driver errors onto the database sentinels, keeping the
// original in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return database.ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return fmt.Errorf("%w: %s: %w", database.ErrUniqueViolation, pgErr.ConstraintName, err)
	}
	return err
}

type queryStartKey struct{}

type queryStart struct {
	sql   string
	start time.Time
}

// queryLogger logs failed and slow statements. Arguments are never logged.
type queryLogger struct {
	logger *zap.Logger
	slow   time.Duration
}

func (q *queryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, start: time.Now()})
}

func (q *queryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	dur := time.Since(st.start)
	stmt := compactSQL(st.sql)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		q.logger.Warn("query failed", zap.String("sql", stmt), zap.Duration("took", dur), zap.Error(data.Err))
	case q.slow > 0 && dur >= q.slow:
		q.logger.Warn("slow query", zap.String("sql", stmt), zap.Duration("took", dur))
	}
}

func compactSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
