package manager_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/errors"
)

func TestExecAndPrint(t *testing.T) {
	m := newEmployeesManager(t)

	var buf bytes.Buffer
	err := m.ExecAndPrint(context.Background(), "SELECT id, name FROM employees ORDER BY id", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Got 2 columns back")
	assert.Contains(t, out, "id | name")
	assert.Contains(t, out, "1 | ada")
	assert.Contains(t, out, "3 | edsger")
}

func TestExecAndPrint_NullRendering(t *testing.T) {
	m := newTestManager(t,
		"CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)",
		"INSERT INTO notes VALUES (1, NULL)",
	)

	var buf bytes.Buffer
	err := m.ExecAndPrint(context.Background(), "SELECT body FROM notes", &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(null)")
}

func TestExecAndPrint_BadStatement(t *testing.T) {
	m := newEmployeesManager(t)

	var buf bytes.Buffer
	err := m.ExecAndPrint(context.Background(), "SELECT nope FROM nowhere", &buf)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeQuery))

	// The session survives a failed statement.
	buf.Reset()
	require.NoError(t, m.ExecAndPrint(context.Background(), "SELECT id FROM employees", &buf))
	assert.Contains(t, buf.String(), "Got 1 columns back")
}
