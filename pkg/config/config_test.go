package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobConfigDefaults(t *testing.T) {
	cfg := NewJobConfig()

	assert.Equal(t, 1, cfg.Task.NumMappers)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 10*time.Second, cfg.Connection.ConnectTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Task.IsParallel())
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewJobConfig()
		cfg.Connection.URL = "postgres://localhost:5432/corp"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing url", func(t *testing.T) {
		cfg := NewJobConfig()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection.url")
	})

	t.Run("zero mappers", func(t *testing.T) {
		cfg := NewJobConfig()
		cfg.Connection.URL = "sqlite:///tmp/corp.db"
		cfg.Task.NumMappers = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "num_mappers")
	})

	t.Run("password without username", func(t *testing.T) {
		cfg := NewJobConfig()
		cfg.Connection.URL = "postgres://localhost:5432/corp"
		cfg.Connection.Password = "hunter2"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "username")
	})
}

func TestEffectivePassword(t *testing.T) {
	conn := ConnectionConfig{Username: "sqoop", Password: "hunter2"}
	assert.Equal(t, "hunter2", conn.EffectivePassword())
	assert.True(t, conn.HasCredentials())

	// A configured username always sends the credential pair, even when the
	// password is empty.
	conn = ConnectionConfig{Username: "sqoop"}
	assert.Equal(t, "", conn.EffectivePassword())
	assert.True(t, conn.HasCredentials())

	conn = ConnectionConfig{}
	assert.Equal(t, "", conn.EffectivePassword())
	assert.False(t, conn.HasCredentials())
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	content := `
connection:
  url: postgres://db.internal:5432/corp
  username: sqoop
  password: ${TEST_DB_PASSWORD}
task:
  table: employees
  split_by: id
  num_mappers: 4
output:
  target_dir: /warehouse/employees
  format: text
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewJobConfig()
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "postgres://db.internal:5432/corp", cfg.Connection.URL)
	assert.Equal(t, "secret123", cfg.Connection.Password)
	assert.Equal(t, "employees", cfg.Task.Table)
	assert.Equal(t, "id", cfg.Task.SplitBy)
	assert.Equal(t, 4, cfg.Task.NumMappers)
	assert.Equal(t, "/warehouse/employees", cfg.Output.TargetDir)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := NewJobConfig()
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), cfg)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := NewJobConfig()
	cfg.Connection.URL = "mysql://db:3306/corp"
	cfg.Task.Table = "events"
	cfg.Task.Columns = []string{"kind", "at"}

	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, Save(path, cfg))

	loaded := NewJobConfig()
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, cfg, loaded)
}
