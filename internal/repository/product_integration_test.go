package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/deppfellow/go-postrpc/internal/config"
	"github.com/deppfellow/go-postrpc/internal/database"
	"github.com/deppfellow/go-postrpc/internal/repository"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skip integration: -short")
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "postrpc",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postrpc?sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("skip integration: cannot start postgres container: %v", err)
	}
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(termCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postrpc?sslmode=disable", host, port.Port())
}

func TestProductRepository_CountAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(ctx, t)

	cfg := &config.Config{
		Primary: config.Primary{Env: config.EnvTest},
		Database: config.DatabaseConfig{
			URL:       dsn,
			PgBouncer: true,
			LogLevel:  "none",
		},
	}
	log := zerolog.Nop()

	require.NoError(t, database.Migrate(ctx, &log, cfg))
	// A second run finds the schema up to date.
	require.NoError(t, database.Migrate(ctx, &log, cfg))

	holder := database.Shared(cfg, &log, nil)
	t.Cleanup(func() { _ = holder.Close() })

	db, err := database.Connect(ctx, cfg, &log, nil)
	require.NoError(t, err)

	repo := repository.NewProductRepository(db.Pool)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	for i := 0; i < 7; i++ {
		_, err := db.Pool.Exec(ctx, `INSERT INTO "Product" ("id", "name") VALUES ($1, $2)`,
			uuid.NewString(), fmt.Sprintf("product-%d", i))
		require.NoError(t, err)
	}

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 7, count)

	again, err := database.Connect(ctx, cfg, &log, nil)
	require.NoError(t, err)
	require.Same(t, db.Pool, again.Pool)
	require.Same(t, holder, database.Shared(cfg, &log, nil))
}
