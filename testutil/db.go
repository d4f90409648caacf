// Package testutil holds the database plumbing shared by integration tests.
// Everything here skips (or runs nothing) when TEST_DATABASE_URL is unset, so
// `go test ./...` passes on a machine without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/iotinerary/planner/migrations"
)

const dsnEnv = "TEST_DATABASE_URL"

// DSN returns the test database URL or skips t.
func DSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip(dsnEnv + " not set; skipping integration test")
	}
	return dsn
}

// NewPool returns a pinged pool on the test database, closed at cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), DSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction on a fresh pool and rolls it back at cleanup,
// so a test never leaves rows behind. Repos accept a pgx.Tx wherever they
// accept a pool.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB returns a database/sql handle on the test database for goose.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(DSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// RunMigrated applies every migration before running the package's tests.
// Call it from TestMain: os.Exit(testutil.RunMigrated(m)).
func RunMigrated(m *testing.M) int {
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		// Each integration test skips itself.
		return m.Run()
	}

	db, err := openSQLDB(dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "testutil.RunMigrated:", err)
		return 1
	}
	_, err = migrations.Apply(context.Background(), db)
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "testutil.RunMigrated:", err)
		return 1
	}
	return m.Run()
}

func openSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}
