package ratelimit

import "github.com/ceyewan/idforge/xerrors"

var (
	// ErrKeyEmpty 限流键为空
	ErrKeyEmpty = xerrors.Wrap(xerrors.ErrInvalidInput, "ratelimit: key is empty")

	// ErrInvalidLimit 限流规则无效
	ErrInvalidLimit = xerrors.Wrap(xerrors.ErrInvalidInput, "ratelimit: invalid limit")

	// ErrInvalidCost 请求的令牌数不是正数
	ErrInvalidCost = xerrors.Wrap(xerrors.ErrInvalidInput, "ratelimit: n must be positive")

	// ErrRateLimitExceeded 超出限流阈值，中间件拒绝请求时返回
	ErrRateLimitExceeded = xerrors.New("ratelimit: rate limit exceeded")
)
