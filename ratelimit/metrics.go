package ratelimit

import (
	"context"

	"github.com/ceyewan/idforge/metrics"
)

const (
	// MetricAllowed 允许通过的令牌数 (Counter)
	MetricAllowed = "ratelimit_allowed_tokens_total"

	// MetricDenied 被拒绝的令牌数 (Counter)
	MetricDenied = "ratelimit_denied_tokens_total"
)

type instruments struct {
	allowed metrics.Counter
	denied  metrics.Counter
}

func newInstruments(m metrics.Meter) (*instruments, error) {
	allowed, err := m.Counter(MetricAllowed, "Total number of tokens granted by the rate limiter.")
	if err != nil {
		return nil, err
	}
	denied, err := m.Counter(MetricDenied, "Total number of tokens denied by the rate limiter.")
	if err != nil {
		return nil, err
	}
	return &instruments{allowed: allowed, denied: denied}, nil
}

// observe 按令牌数累加；限流键可能是客户端 IP，不作为标签以免高基数
func (i *instruments) observe(ctx context.Context, allowed bool, n int) {
	if allowed {
		i.allowed.Add(ctx, float64(n))
		return
	}
	i.denied.Add(ctx, float64(n))
}
