package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"numguru/internal/config"
	"numguru/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", DSN(config.DatabaseConfig{DatabaseURL: " postgres://u@h/db ", DBHost: "ignored"}))

	got := DSN(config.DatabaseConfig{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "pw", DBName: "numguru", DBSSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=numguru sslmode=disable", got)
}

func TestPoolConfig_AppliesOverrides(t *testing.T) {
	pcfg, err := poolConfig(config.DatabaseConfig{
		DatabaseURL:         "postgres://app@localhost:5432/numguru",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        7,
		PoolMinConns:        2,
		PoolMaxConnIdleTime: time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(7), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Minute, pcfg.MaxConnIdleTime)
	assert.Equal(t, "numguru", pcfg.ConnConfig.Database)
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := poolConfig(config.DatabaseConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), database.ErrNoRows)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), database.ErrNoRows)

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "payment_orders_pkey"}
	err := translate(pgErr)
	assert.ErrorIs(t, err, database.ErrUniqueViolation)
	assert.ErrorAs(t, err, &pgErr)
	assert.Contains(t, err.Error(), "payment_orders_pkey")

	other := errors.New("boom")
	assert.Same(t, other, translate(other))
}

func TestPool_NilSafe(t *testing.T) {
	var p *Pool
	assert.ErrorIs(t, p.Ping(t.Context()), database.ErrClosed)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
	assert.ErrorIs(t, p.QueryRow(t.Context(), "SELECT 1").Scan(), database.ErrClosed)
	_, err := p.Begin(t.Context())
	assert.ErrorIs(t, err, database.ErrClosed)
}

func TestQueryLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	q := &queryLogger{logger: zap.New(core), slow: time.Hour}

	ctx := q.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1\n  FROM t"})
	q.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Zero(t, logs.Len())

	ctx = q.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	q.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})
	assert.Zero(t, logs.Len())

	ctx = q.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "UPDATE  t\nSET x = 1"})
	q.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("deadlock")})
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "query failed", entry.Message)
	assert.Equal(t, "UPDATE t SET x = 1", entry.ContextMap()["sql"])

	q.slow = time.Nanosecond
	ctx = q.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(0)"})
	time.Sleep(time.Millisecond)
	q.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Equal(t, "slow query", logs.All()[1].Message)
}
