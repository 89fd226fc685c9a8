package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/errors"
)

func TestSplitColumn_ExplicitWins(t *testing.T) {
	m := newEmployeesManager(t)

	// User intent overrides inference even though a primary key exists.
	col, err := m.SplitColumn(context.Background(), "employees", "hired", 4)
	require.NoError(t, err)
	assert.Equal(t, "hired", col)
}

func TestSplitColumn_InfersPrimaryKey(t *testing.T) {
	m := newEmployeesManager(t)

	col, err := m.SplitColumn(context.Background(), "employees", "", 4)
	require.NoError(t, err)
	assert.Equal(t, "id", col)
}

func TestSplitColumn_UnkeyedSequential(t *testing.T) {
	m := newEventsManager(t)

	// A sequential read needs no partitioning; no column is not an error.
	col, err := m.SplitColumn(context.Background(), "events", "", 1)
	require.NoError(t, err)
	assert.Empty(t, col)
}

func TestSplitColumn_UnkeyedParallelFailsFast(t *testing.T) {
	m := newEventsManager(t)

	_, err := m.SplitColumn(context.Background(), "events", "", 8)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "events")
	assert.Contains(t, err.Error(), "split_by")
}

func TestSplitColumn_ExplicitOnUnkeyedTable(t *testing.T) {
	m := newEventsManager(t)

	col, err := m.SplitColumn(context.Background(), "events", "at", 8)
	require.NoError(t, err)
	assert.Equal(t, "at", col)
}
