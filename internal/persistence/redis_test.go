package persistence

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis(t *testing.T) {
	server := miniredis.RunT(t)
	connection := NewRedis(RedisConnectionOpts{
		AppName:             "test",
		Addr:                server.Addr(),
		HealthcheckInterval: 10 * time.Millisecond,
		RetryInterval:       10 * time.Millisecond,
	}, RedisAuthOpts{}, nil)
	require.NoError(t, connection.Init())
	defer connection.Shutdown()

	ready := GetReadinessCheck("redis", connection)
	assert.NoError(t, ready())
	assert.Equal(t, "test", connection.GetId())
	assert.Empty(t, server.Keys())

	server.Close()
	require.Eventually(t, func() bool { return ready() != nil }, time.Second, 10*time.Millisecond)

	require.NoError(t, server.Restart())
	require.Eventually(t, func() bool { return ready() == nil }, 2*time.Second, 10*time.Millisecond)
}

func TestRedis_Shutdown(t *testing.T) {
	server := miniredis.RunT(t)
	connection := NewRedis(RedisConnectionOpts{Addr: server.Addr()}, RedisAuthOpts{}, nil)
	require.NoError(t, connection.Init())
	require.NoError(t, connection.Shutdown())
	assert.Equal(t, StatusCodeShuttingDown, connection.GetStatus().GetCode())
	assert.Nil(t, connection.GetClient())
	require.NoError(t, connection.Shutdown())
}
