package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hrnet/internal/config"
	"github.com/UnknownOlympus/hrnet/internal/repository"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	poolConfig, err := repository.PoolConfig(config.PostgresConfig{
		Host:           "db.internal",
		Port:           "6432",
		User:           "hr",
		Password:       "p@ss/word",
		Dbname:         "hrnet",
		MinConns:       2,
		MaxConns:       6,
		ConnectTimeout: 3 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, int32(6), poolConfig.MaxConns)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(6432), poolConfig.ConnConfig.Port)
	assert.Equal(t, "p@ss/word", poolConfig.ConnConfig.Password)
	assert.Equal(t, "hrnet", poolConfig.ConnConfig.Database)
	assert.Equal(t, 3*time.Second, poolConfig.ConnConfig.ConnectTimeout)
	assert.Equal(t, "hrnet", poolConfig.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_InvalidPort(t *testing.T) {
	t.Parallel()

	_, err := repository.PoolConfig(config.PostgresConfig{Host: "db", Port: "not-a-port", MaxConns: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse database config")
}
