// Package testhelpers provides containerized infrastructure for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "travelbuddy"
	postgresPassword = "travelbuddy"
	postgresDB       = "travelbuddy_test"
)

// PostgresContainer is a throwaway PostgreSQL server for tests
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
	DSN       string
}

// SetupPostgres starts a PostgreSQL container and returns a connected pool.
// The test is skipped in -short mode or when no Docker daemon is reachable.
// Container and pool are released through t.Cleanup.
//
//	func TestWithPostgres(t *testing.T) {
//	    pg := testhelpers.SetupPostgres(t)
//	    store := repository.NewPostgresStore(pg.Pool)
//	    // ... test code ...
//	}
func SetupPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// the server restarts once after init, so wait for the second line
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	pc := &PostgresContainer{Container: container}

	t.Cleanup(func() {
		if pc.Pool != nil {
			pc.Pool.Close()
		}
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get PostgreSQL host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to get PostgreSQL port: %v", err)
	}
	pc.DSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port.Port(), postgresDB)

	pool, err := pgxpool.New(ctx, pc.DSN)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	pc.Pool = pool

	pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		t.Fatalf("Failed to ping PostgreSQL: %v", err)
	}

	t.Logf("PostgreSQL started: %s:%s", host, port.Port())
	return pc
}
