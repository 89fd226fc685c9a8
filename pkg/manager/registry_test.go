package manager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/manager"
)

func TestRegistry(t *testing.T) {
	reg := manager.NewRegistry()

	factory := func(cfg *config.JobConfig) (manager.Vendor, error) {
		return nil, nil
	}

	require.NoError(t, reg.Register("testdb", factory))
	assert.Equal(t, []string{"testdb"}, reg.Schemes())

	err := reg.Register("testdb", factory)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestRegistry_CreateByScheme(t *testing.T) {
	cfg := config.NewJobConfig()
	cfg.Connection.URL = "sqlite:///tmp/test.db"

	v, err := manager.CreateVendor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", v.Name())
}

func TestRegistry_UnknownScheme(t *testing.T) {
	cfg := config.NewJobConfig()
	cfg.Connection.URL = "oracle://db:1521/corp"

	_, err := manager.CreateVendor(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "oracle")
}

func TestRegistry_NoScheme(t *testing.T) {
	cfg := config.NewJobConfig()
	cfg.Connection.URL = "/tmp/test.db"

	_, err := manager.CreateVendor(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
