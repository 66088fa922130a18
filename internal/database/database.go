// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - parsing the configured connection string into a pgx pool config
//   - pool tuning and PgBouncer compatibility
//   - wiring query tracing/logging (pgx tracelog + zerolog, New Relic nrpgx5)
//   - the process-wide Holder that makes sure only one pool exists
//   - embedded schema migrations (tern)
package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/go-postrpc/internal/config"
	loggerConfig "github.com/deppfellow/go-postrpc/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a lifecycle logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx query tracing out to several tracers.
//
// pgx has a single Tracer slot; New Relic and the local SQL logger both
// want it.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// queryLogOutput is where SQL query logs go.
var queryLogOutput io.Writer = os.Stdout

// New creates a PostgreSQL connection pool with instrumentation and pings it.
//
// Most callers want Connect, which goes through the process-wide Holder.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := newPoolConfig(cfg, loggerService)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", pgxPoolConfig.ConnConfig.Host).
		Str("database", pgxPoolConfig.ConnConfig.Database).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Bool("pgbouncer", cfg.Database.PgBouncer).
		Str("query_log_level", cfg.Database.LogLevel).
		Msg("connected to the database")

	return &Database{
		Pool: pool,
		log:  logger,
	}, nil
}

// newPoolConfig turns DatabaseConfig into a pgxpool config without dialing.
func newPoolConfig(cfg *config.Config, loggerService *loggerConfig.LoggerService) (*pgxpool.Config, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database url is not configured")
	}

	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		pgxPoolConfig.MaxConns = cfg.Database.MaxOpenConns
	}
	if cfg.Database.MinOpenConns > 0 {
		pgxPoolConfig.MinConns = cfg.Database.MinOpenConns
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second
	}

	// PgBouncer in transaction mode hands each statement a different
	// backend, so prepared statements cannot be reused.
	if cfg.Database.PgBouncer {
		pgxPoolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	traceLevel := loggerConfig.ParseTraceLogLevel(cfg.Database.LogLevel)
	if traceLevel != tracelog.LogLevelNone {
		pgxLogger := loggerConfig.NewPgxLogger(queryLogOutput, loggerConfig.ZerologLevelForTrace(traceLevel))
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: traceLevel,
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return pgxPoolConfig, nil
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
