package connector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/idforge/xerrors"
)

func TestRedisConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *RedisConfig
		wantCode string
	}{
		{name: "defaults", cfg: &RedisConfig{Addr: "localhost:6379"}},
		{name: "custom", cfg: &RedisConfig{Name: "ids", Addr: "localhost:6379", DB: 2, PoolSize: 20}},
		{name: "nil config", cfg: nil, wantCode: "config_nil"},
		{name: "empty addr", cfg: &RedisConfig{}, wantCode: "addr_required"},
		{name: "negative db", cfg: &RedisConfig{Addr: "localhost:6379", DB: -1}, wantCode: "db_negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := NewRedis(tt.cfg)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfig)
				assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
				assert.Equal(t, tt.wantCode, xerrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			defer conn.Close()
			assert.NotNil(t, conn.GetClient())
			assert.False(t, conn.IsHealthy())
		})
	}
}

func TestRedisConfigDefaults(t *testing.T) {
	cfg := &RedisConfig{Addr: "localhost:6379"}
	cfg.setDefaults()

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

func TestRedisConnector_Unreachable(t *testing.T) {
	conn, err := NewRedis(&RedisConfig{
		Name:        "unreachable",
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	require.NoError(t, err)
	assert.Equal(t, "unreachable", conn.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = conn.Connect(ctx)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, conn.HealthCheck(ctx), ErrHealthCheck)
	assert.False(t, conn.IsHealthy())

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.ErrorIs(t, conn.Connect(ctx), ErrNotConnected)
	assert.ErrorIs(t, conn.HealthCheck(ctx), ErrNotConnected)
}
