package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/idforge/cache"
	"github.com/ceyewan/idforge/testkit"
	"github.com/ceyewan/idforge/xerrors"
)

type node struct {
	Host string `json:"host" msgpack:"host"`
	Port int    `json:"port" msgpack:"port"`
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	kit := testkit.NewKit(t)
	conn := testkit.NewRedisContainerConnector(t)
	client := conn.GetClient()

	for _, s := range []string{"json", "msgpack"} {
		t.Run(s, func(t *testing.T) {
			ctx := testkit.NewContext(t, 30*time.Second)
			prefix := testkit.NewID() + ":"

			c, err := cache.New(&cache.Config{Prefix: prefix, Serializer: s},
				cache.WithRedisConnector(conn),
				cache.WithLogger(kit.Logger),
				cache.WithMeter(kit.Meter),
			)
			require.NoError(t, err)
			defer c.Close()

			t.Run("set get delete", func(t *testing.T) {
				want := node{Host: "10.0.0.1", Port: 8080}
				require.NoError(t, c.Set(ctx, "n", want, time.Minute))

				// 前缀直接体现在 Redis 键上
				ttl, err := client.TTL(ctx, prefix+"n").Result()
				require.NoError(t, err)
				assert.Greater(t, ttl, time.Duration(0))

				var got node
				require.NoError(t, c.Get(ctx, "n", &got))
				assert.Equal(t, want, got)

				require.NoError(t, c.Delete(ctx, "n"))
				assert.ErrorIs(t, c.Get(ctx, "n", &got), cache.ErrMiss)
			})

			t.Run("expire", func(t *testing.T) {
				require.NoError(t, c.Set(ctx, "e", 1, time.Minute))
				require.NoError(t, c.Expire(ctx, "e", 0))
				ttl, err := client.TTL(ctx, prefix+"e").Result()
				require.NoError(t, err)
				assert.Equal(t, time.Duration(-1), ttl)

				// 已经没有过期时间的键再次 persist 仍然成功
				require.NoError(t, c.Expire(ctx, "e", 0))
				assert.ErrorIs(t, c.Expire(ctx, "absent", 0), cache.ErrMiss)
				assert.ErrorIs(t, c.Expire(ctx, "absent", time.Minute), cache.ErrMiss)
				assert.ErrorIs(t, c.Expire(ctx, "e", -time.Second), cache.ErrInvalidTTL)
			})

			t.Run("has", func(t *testing.T) {
				require.NoError(t, c.Set(ctx, "h", "v", 0))
				ok, err := c.Has(ctx, "h")
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = c.Has(ctx, "")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("hash", func(t *testing.T) {
				require.NoError(t, c.HSet(ctx, "workers", "3", node{Host: "a", Port: 1}))
				require.NoError(t, c.HSetWithTTL(ctx, "workers", "4", node{Host: "b", Port: 2}, time.Minute))

				ttl, err := client.TTL(ctx, prefix+"workers").Result()
				require.NoError(t, err)
				assert.Greater(t, ttl, time.Duration(0))

				var got node
				require.NoError(t, c.HGet(ctx, "workers", "4", &got))
				assert.Equal(t, "b", got.Host)

				require.NoError(t, c.HDel(ctx, "workers", "4"))
				assert.ErrorIs(t, c.HGet(ctx, "workers", "4", &got), cache.ErrMiss)

				assert.True(t, xerrors.Is(c.HDel(ctx, "workers"), xerrors.ErrInvalidInput))
				assert.True(t, xerrors.Is(c.HDel(ctx, " ", "3"), xerrors.ErrInvalidInput))
			})
		})
	}

	// 关闭缓存不影响借用的连接器
	require.NoError(t, conn.HealthCheck(kit.Ctx))
}
