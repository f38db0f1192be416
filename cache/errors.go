package cache

import "github.com/ceyewan/idforge/xerrors"

var (
	// ErrMiss 键或字段不存在
	ErrMiss = xerrors.Wrap(xerrors.ErrNotFound, "cache: miss")

	// ErrInvalidTTL 过期时间为负数
	ErrInvalidTTL = xerrors.Wrap(xerrors.ErrInvalidInput, "cache: negative ttl")

	// ErrInvalidConfig 缓存配置非法
	ErrInvalidConfig = xerrors.Wrap(xerrors.ErrInvalidInput, "cache: invalid config")

	// ErrNotSupported 当前模式不支持该操作
	ErrNotSupported = xerrors.Wrap(xerrors.ErrNotSupported, "cache: operation not supported in standalone mode")
)
