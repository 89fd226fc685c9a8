package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
)

func TestDSN(t *testing.T) {
	v := &Vendor{}

	t.Run("file path", func(t *testing.T) {
		cfg := config.NewJobConfig()
		cfg.Connection.URL = "sqlite:///var/data/corp.db"

		dsn, err := v.DSN(cfg)
		require.NoError(t, err)
		assert.Equal(t, "/var/data/corp.db", dsn)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := config.NewJobConfig()
		cfg.Connection.URL = "sqlite://:memory:"

		dsn, err := v.DSN(cfg)
		require.NoError(t, err)
		assert.Equal(t, ":memory:", dsn)
	})

	t.Run("empty path", func(t *testing.T) {
		cfg := config.NewJobConfig()
		cfg.Connection.URL = "sqlite://"

		_, err := v.DSN(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})
}

func TestTxOptions(t *testing.T) {
	v := &Vendor{}
	assert.Equal(t, sql.TxOptions{}, v.TxOptions())
}

func TestQuote(t *testing.T) {
	v := &Vendor{}
	assert.Equal(t, `"events"`, v.Quote("events"))
}
