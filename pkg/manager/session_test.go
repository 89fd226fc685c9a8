package manager_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/manager"
)

func TestSessionSingleton(t *testing.T) {
	m := newEmployeesManager(t)
	ctx := context.Background()

	s1, err := m.Session(ctx)
	require.NoError(t, err)

	s2, err := m.Session(ctx)
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}

// Opening a second cursor must release the first: the previous rows handle is
// exhausted and no longer iterable.
func TestExecuteReleasesPreviousCursor(t *testing.T) {
	m := newEmployeesManager(t)
	ctx := context.Background()

	first, err := m.Execute(ctx, "SELECT id FROM employees")
	require.NoError(t, err)

	second, err := m.Execute(ctx, "SELECT name FROM employees")
	require.NoError(t, err)
	defer second.Close()

	assert.False(t, first.Rows().Next())
	assert.True(t, second.Rows().Next())
}

func TestExecuteBindsPositionalArgs(t *testing.T) {
	m := newEmployeesManager(t)

	cur, err := m.Execute(context.Background(),
		"SELECT name FROM employees WHERE id > ? AND hired < ?", 1, "2000-01-01")
	require.NoError(t, err)
	defer cur.Close()

	var names []string
	rows := cur.Rows()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.ElementsMatch(t, []string{"grace", "edsger"}, names)
}

func TestExecuteFailurePropagates(t *testing.T) {
	m := newEmployeesManager(t)

	_, err := m.Execute(context.Background(), "SELECT broken syntax FROM")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeQuery))
}

func TestReleaseIdempotent(t *testing.T) {
	m := newEmployeesManager(t)

	// Releasing with no open cursor is a no-op.
	m.Release()

	cur, err := m.Execute(context.Background(), "SELECT id FROM employees")
	require.NoError(t, err)

	m.Release()
	m.Release()
	assert.False(t, cur.Rows().Next())
}

func TestCursorCloseIdempotent(t *testing.T) {
	m := newEmployeesManager(t)

	cur, err := m.Execute(context.Background(), "SELECT id FROM employees")
	require.NoError(t, err)

	cur.Close()
	cur.Close()

	// The session remains usable for the next cursor.
	next, err := m.Execute(context.Background(), "SELECT name FROM employees")
	require.NoError(t, err)
	next.Close()
}

func TestManagerCloseIdempotent(t *testing.T) {
	m := newEmployeesManager(t)

	_, err := m.Execute(context.Background(), "SELECT id FROM employees")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestConnectFailureIsFatal(t *testing.T) {
	cfg := config.NewJobConfig()
	cfg.Connection.URL = "sqlite:///nonexistent-dir/for/sure/test.db"

	vendor, err := manager.CreateVendor(cfg)
	require.NoError(t, err)

	m := manager.New(vendor, cfg)
	defer func() { _ = m.Close() }()

	_, err = m.Session(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnection))
	assert.True(t, errors.IsFatal(err))
}

func TestInvalidConfigRejectedBeforeConnecting(t *testing.T) {
	cfg := config.NewJobConfig()
	cfg.Connection.URL = "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	cfg.Task.NumMappers = 0

	vendor, err := manager.CreateVendor(cfg)
	require.NoError(t, err)

	m := manager.New(vendor, cfg)
	defer func() { _ = m.Close() }()

	_, err = m.Session(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
