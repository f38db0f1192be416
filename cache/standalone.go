package cache

import (
	"context"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/maypok86/otter/v2/stats"

	"github.com/ceyewan/idforge/cache/serializer"
	"github.com/ceyewan/idforge/clog"
	"github.com/ceyewan/idforge/xerrors"
)

// noExpiry 未指定 TTL 时使用的过期时间（100 年，视为永久）
const noExpiry = 24 * 365 * 100 * time.Hour

// standaloneCache 基于 otter 的本地缓存
//
// 值以序列化后的字节保存，读取时解码为新对象，调用方修改结果不会影响缓存内容。
type standaloneCache struct {
	cache      *otter.Cache[string, []byte]
	serializer serializer.Serializer
	prefix     string
	logger     clog.Logger
	metrics    *instruments
}

func newStandalone(cfg *Config, s serializer.Serializer, logger clog.Logger, inst *instruments) (Cache, error) {
	cache, err := otter.New(&otter.Options[string, []byte]{
		MaximumSize:   cfg.Standalone.Capacity,
		StatsRecorder: stats.NewCounter(),
		// 写入过期：过期时间从写入开始计算，读取不会续期，与 Redis TTL 语义一致
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](noExpiry),
	})
	if err != nil {
		return nil, xerrors.Wrap(err, "build otter cache")
	}

	logger.Info("standalone cache created",
		clog.Int("capacity", cfg.Standalone.Capacity),
		clog.String("serializer", s.Name()),
	)
	return &standaloneCache{
		cache:      cache,
		serializer: s,
		prefix:     cfg.Prefix,
		logger:     logger,
		metrics:    inst,
	}, nil
}

func (c *standaloneCache) key(key string) string {
	return c.prefix + key
}

// --- 键值（Key-Value） ---

func (c *standaloneCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if err := checkTTL(ttl); err != nil {
		return err
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return xerrors.Wrapf(err, "marshal %s", key)
	}

	full := c.key(key)
	c.cache.Set(full, data)
	if ttl > 0 {
		c.cache.SetExpiresAfter(full, ttl)
	}
	return nil
}

func (c *standaloneCache) Get(ctx context.Context, key string, dest any) (err error) {
	defer func() { c.metrics.observe(ctx, "get", err) }()

	data, ok := c.cache.GetIfPresent(c.key(key))
	if !ok {
		return xerrors.Wrapf(ErrMiss, "key %s", key)
	}
	return c.serializer.Unmarshal(data, dest)
}

func (c *standaloneCache) Delete(_ context.Context, keys ...string) error {
	if err := checkKeys(keys); err != nil {
		return err
	}
	for _, k := range keys {
		c.cache.Invalidate(c.key(k))
	}
	return nil
}

func (c *standaloneCache) Has(_ context.Context, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	_, ok := c.cache.GetIfPresent(c.key(key))
	return ok, nil
}

func (c *standaloneCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	if err := checkTTL(ttl); err != nil {
		return err
	}
	full := c.key(key)
	if _, ok := c.cache.GetIfPresent(full); !ok {
		return xerrors.Wrapf(ErrMiss, "key %s", key)
	}
	if ttl == 0 {
		ttl = noExpiry
	}
	c.cache.SetExpiresAfter(full, ttl)
	return nil
}

// --- Hash：单机模式不支持 ---

func (c *standaloneCache) HSet(context.Context, string, string, any) error {
	return ErrNotSupported
}

func (c *standaloneCache) HSetWithTTL(context.Context, string, string, any, time.Duration) error {
	return ErrNotSupported
}

func (c *standaloneCache) HGet(context.Context, string, string, any) error {
	return ErrNotSupported
}

func (c *standaloneCache) HDel(context.Context, string, ...string) error {
	return ErrNotSupported
}

func (c *standaloneCache) Close() error {
	c.cache.StopAllGoroutines()
	return nil
}
