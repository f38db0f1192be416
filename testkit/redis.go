package testkit

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ceyewan/idforge/connector"
)

const redisImage = "redis:7-alpine"

// NewRedisContainerConfig 使用 testcontainers 创建 Redis 容器并返回配置
// Docker 不可用时跳过测试，容器生命周期由 t.Cleanup 管理
func NewRedisContainerConfig(t *testing.T) *connector.RedisConfig {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, redisImage)
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	return &connector.RedisConfig{
		Name: "testcontainer-redis",
		Addr: addr,
	}
}

// NewRedisContainerConnector 使用 testcontainers 创建并连接 Redis 连接器
func NewRedisContainerConnector(t *testing.T) connector.RedisConnector {
	t.Helper()
	cfg := NewRedisContainerConfig(t)

	conn, err := connector.NewRedis(cfg, connector.WithLogger(NewLogger()))
	require.NoError(t, err, "failed to create redis connector")
	require.NoError(t, conn.Connect(context.Background()), "failed to connect to redis")

	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// NewRedisContainerClient 返回原生 Redis 客户端
func NewRedisContainerClient(t *testing.T) *redis.Client {
	return NewRedisContainerConnector(t).GetClient()
}

// FlushRedis 清空当前 Redis 数据库
func FlushRedis(t *testing.T, client *redis.Client) {
	t.Helper()
	require.NoError(t, client.FlushDB(context.Background()).Err(), "failed to flush redis")
}
