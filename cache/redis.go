package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/idforge/cache/serializer"
	"github.com/ceyewan/idforge/clog"
	"github.com/ceyewan/idforge/connector"
	"github.com/ceyewan/idforge/xerrors"
)

type redisCache struct {
	client     *redis.Client
	serializer serializer.Serializer
	prefix     string
	logger     clog.Logger
	metrics    *instruments
}

func newRedis(conn connector.RedisConnector, cfg *Config, s serializer.Serializer, logger clog.Logger, inst *instruments) (Cache, error) {
	client := conn.GetClient()
	if client == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, "redis_client_nil")
	}
	logger.Info("redis cache created",
		clog.String("connector", conn.Name()),
		clog.String("prefix", cfg.Prefix),
		clog.String("serializer", s.Name()),
	)
	return &redisCache{
		client:     client,
		serializer: s,
		prefix:     cfg.Prefix,
		logger:     logger,
		metrics:    inst,
	}, nil
}

func (c *redisCache) key(key string) string {
	return c.prefix + key
}

// --- 键值（Key-Value） ---

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := checkTTL(ttl); err != nil {
		return err
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return xerrors.Wrapf(err, "marshal %s", key)
	}
	return xerrors.Wrapf(c.client.Set(ctx, c.key(key), data, ttl).Err(), "key %s", key)
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (err error) {
	defer func() { c.metrics.observe(ctx, "get", err) }()

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return c.wrapMiss(err, key)
	}
	return c.serializer.Unmarshal(data, dest)
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if err := checkKeys(keys); err != nil {
		return err
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return xerrors.Wrapf(c.client.Del(ctx, full...).Err(), "keys %s", strings.Join(keys, ","))
}

func (c *redisCache) Has(ctx context.Context, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, xerrors.Wrapf(err, "key %s", key)
	}
	return n > 0, nil
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := checkTTL(ttl); err != nil {
		return err
	}

	var (
		ok  bool
		err error
	)
	if ttl == 0 {
		// PERSIST 对没有过期时间的已存在键也返回 false，需要额外确认存在性
		if ok, err = c.client.Persist(ctx, c.key(key)).Result(); err == nil && !ok {
			ok, err = c.Has(ctx, key)
		}
	} else {
		ok, err = c.client.Expire(ctx, c.key(key), ttl).Result()
	}
	if err != nil {
		return xerrors.Wrapf(err, "key %s", key)
	}
	if !ok {
		return xerrors.Wrapf(ErrMiss, "key %s", key)
	}
	return nil
}

// --- 哈希（Hash） ---

func (c *redisCache) HSet(ctx context.Context, key string, field string, value any) error {
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return xerrors.Wrapf(err, "marshal %s.%s", key, field)
	}
	return xerrors.Wrapf(c.client.HSet(ctx, c.key(key), field, data).Err(), "key %s.%s", key, field)
}

func (c *redisCache) HSetWithTTL(ctx context.Context, key string, field string, value any, ttl time.Duration) error {
	if err := checkTTL(ttl); err != nil {
		return err
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return xerrors.Wrapf(err, "marshal %s.%s", key, field)
	}

	full := c.key(key)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, full, field, data)
		if ttl > 0 {
			pipe.Expire(ctx, full, ttl)
		} else {
			pipe.Persist(ctx, full)
		}
		return nil
	})
	return xerrors.Wrapf(err, "key %s.%s", key, field)
}

func (c *redisCache) HGet(ctx context.Context, key string, field string, dest any) (err error) {
	defer func() { c.metrics.observe(ctx, "hget", err) }()

	data, err := c.client.HGet(ctx, c.key(key), field).Bytes()
	if err != nil {
		return c.wrapMiss(err, key+"."+field)
	}
	return c.serializer.Unmarshal(data, dest)
}

func (c *redisCache) HDel(ctx context.Context, key string, fields ...string) error {
	if err := checkHashDel(key, fields); err != nil {
		return err
	}
	return xerrors.Wrapf(c.client.HDel(ctx, c.key(key), fields...).Err(), "key %s", key)
}

// Close 不关闭借用的连接器
func (c *redisCache) Close() error {
	return nil
}

func (c *redisCache) wrapMiss(err error, what string) error {
	if errors.Is(err, redis.Nil) {
		return xerrors.Wrapf(ErrMiss, "key %s", what)
	}
	return xerrors.Wrapf(err, "key %s", what)
}
