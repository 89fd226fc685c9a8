package manager_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/manager"

	// Registers the sqlite vendor and driver used by the test databases
	_ "github.com/gcristian/sqoop/pkg/manager/vendors/sqlite"
)

// newTestManager creates a manager over a fresh SQLite database seeded with
// the given statements.
func newTestManager(t *testing.T, stmts ...string) *manager.Manager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	cfg := config.NewJobConfig()
	cfg.Connection.URL = "sqlite://" + path

	vendor, err := manager.CreateVendor(cfg)
	require.NoError(t, err)

	m := manager.New(vendor, cfg)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// newEmployeesManager seeds the canonical keyed test table.
func newEmployeesManager(t *testing.T) *manager.Manager {
	t.Helper()
	return newTestManager(t,
		`CREATE TABLE employees (id INTEGER PRIMARY KEY, name VARCHAR(64), hired DATE)`,
		`INSERT INTO employees VALUES (1, 'ada', '1843-01-01')`,
		`INSERT INTO employees VALUES (2, 'grace', '1952-05-01')`,
		`INSERT INTO employees VALUES (3, 'edsger', '1968-03-01')`,
	)
}

// newEventsManager seeds the canonical unkeyed test table.
func newEventsManager(t *testing.T) *manager.Manager {
	t.Helper()
	return newTestManager(t,
		`CREATE TABLE events (kind VARCHAR(32), payload TEXT, at TIMESTAMP)`,
	)
}
