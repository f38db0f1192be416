// Package cache 提供键值缓存组件，统一 Redis（分布式）与本地内存（单机）两种后端。
//
// 值在写入前由 serializer 编码（json 或 msgpack），两种后端的读写语义一致：
//   - 负数 TTL 被拒绝（ErrInvalidTTL），0 表示不过期
//   - 读取不存在的键返回 ErrMiss
//   - Hash 操作仅分布式模式支持，单机模式返回 ErrNotSupported
//
// 基本使用：
//
//	conn, _ := connector.NewRedis(&connector.RedisConfig{Addr: "127.0.0.1:6379"})
//	_ = conn.Connect(ctx)
//	c, _ := cache.New(&cache.Config{Prefix: "idforge:"},
//	    cache.WithRedisConnector(conn), cache.WithLogger(logger))
//
//	_ = c.Set(ctx, "worker:3", lease, time.Minute)
//	var got Lease
//	err := c.Get(ctx, "worker:3", &got)
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/ceyewan/idforge/cache/serializer"
	"github.com/ceyewan/idforge/xerrors"
)

// Cache 缓存组件的核心能力
type Cache interface {
	// --- Key-Value ---
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	// Delete 删除一个或多个键，keys 为空时返回 ErrInvalidInput
	Delete(ctx context.Context, keys ...string) error
	// Has 判断键是否存在，空白键直接返回 false
	Has(ctx context.Context, key string) (bool, error)
	// Expire 重设过期时间，ttl 为 0 时移除过期时间
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// --- Hash (Distributed Only) ---
	HSet(ctx context.Context, key string, field string, value any) error
	// HSetWithTTL 写入字段并重设整个 Hash 的过期时间
	HSetWithTTL(ctx context.Context, key string, field string, value any, ttl time.Duration) error
	HGet(ctx context.Context, key string, field string, dest any) error
	// HDel 删除字段，空白键或未指定字段时返回 ErrInvalidInput
	HDel(ctx context.Context, key string, fields ...string) error

	Close() error
}

// New 根据配置创建缓存实例
//
// Mode 为 "standalone" 时创建本地内存缓存；为 "distributed" 或空时创建 Redis 缓存，
// 需要通过 WithRedisConnector 注入连接器。
func New(cfg *Config, opts ...Option) (Cache, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, "config_nil")
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := &options{}
	for _, o := range opts {
		o(opt)
	}
	opt.applyDefaults()

	s, err := serializer.New(cfg.Serializer)
	if err != nil {
		return nil, xerrors.WithCode(xerrors.Wrap(ErrInvalidConfig, err.Error()), "unsupported_serializer")
	}

	inst, err := newInstruments(opt.meter, cfg.Mode)
	if err != nil {
		return nil, xerrors.Wrap(err, "create cache metrics")
	}

	switch cfg.Mode {
	case ModeStandalone:
		return newStandalone(cfg, s, opt.logger, inst)
	default:
		if opt.redisConn == nil {
			return nil, xerrors.WithCode(ErrInvalidConfig, "redis_connector_required")
		}
		return newRedis(opt.redisConn, cfg, s, opt.logger, inst)
	}
}

// ============================================================================
// 参数校验（两种后端共用）
// ============================================================================

func checkTTL(ttl time.Duration) error {
	if ttl < 0 {
		return xerrors.Wrapf(ErrInvalidTTL, "ttl %v", ttl)
	}
	return nil
}

func checkKeys(keys []string) error {
	if len(keys) == 0 {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "cache: no keys given")
	}
	return nil
}

func checkHashDel(key string, fields []string) error {
	if strings.TrimSpace(key) == "" || len(fields) == 0 {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "cache: hash key or fields empty")
	}
	return nil
}
