package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ceyewan/idforge/clog"
)

// limiterWrapper 包装 rate.Limiter 并记录最后访问时间
type limiterWrapper struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (w *limiterWrapper) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

type standaloneLimiter struct {
	cfg      *StandaloneConfig
	logger   clog.Logger
	metrics  *instruments
	limiters sync.Map // map[string]*limiterWrapper

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newStandalone(cfg *StandaloneConfig, logger clog.Logger, inst *instruments) *standaloneLimiter {
	l := &standaloneLimiter{
		cfg:     cfg,
		logger:  logger,
		metrics: inst,
		stopCh:  make(chan struct{}),
	}
	go l.cleanup(cfg.CleanupInterval, cfg.IdleTimeout)

	logger.Info("standalone rate limiter created",
		clog.Duration("cleanup_interval", cfg.CleanupInterval),
		clog.Duration("idle_timeout", cfg.IdleTimeout))
	return l
}

func (l *standaloneLimiter) Allow(ctx context.Context, key string, limit Limit) (bool, error) {
	return l.AllowN(ctx, key, limit, 1)
}

func (l *standaloneLimiter) AllowN(ctx context.Context, key string, limit Limit, n int) (bool, error) {
	if err := check(key, limit); err != nil {
		return false, err
	}
	if n <= 0 {
		return false, ErrInvalidCost
	}

	now := time.Now()
	w := l.getLimiter(key, limit)
	allowed := w.limiter.AllowN(now, n)
	w.touch(now)

	l.metrics.observe(ctx, allowed, n)
	if !allowed {
		l.logger.Debug("rate limited",
			clog.String("key", key),
			clog.Int("requested", n),
			clog.Int("burst", limit.Burst))
	}
	return allowed, nil
}

func (l *standaloneLimiter) Wait(ctx context.Context, key string, limit Limit) error {
	if err := check(key, limit); err != nil {
		return err
	}

	w := l.getLimiter(key, limit)
	// rate.Limiter 自身并发安全，等待期间不持有 wrapper 的锁
	err := w.limiter.Wait(ctx)
	w.touch(time.Now())
	if err == nil {
		l.metrics.observe(ctx, true, 1)
	}
	return err
}

func check(key string, limit Limit) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if !limit.valid() {
		return ErrInvalidLimit
	}
	return nil
}

// getLimiter 获取或创建指定 key 的限流器，规则不同的同名 key 相互独立
func (l *standaloneLimiter) getLimiter(key string, limit Limit) *limiterWrapper {
	cacheKey := fmt.Sprintf("%s:%v:%d", key, limit.Rate, limit.Burst)
	if v, ok := l.limiters.Load(cacheKey); ok {
		return v.(*limiterWrapper)
	}

	w := &limiterWrapper{
		limiter:  rate.NewLimiter(rate.Limit(limit.Rate), limit.Burst),
		lastSeen: time.Now(),
	}
	actual, _ := l.limiters.LoadOrStore(cacheKey, w)
	return actual.(*limiterWrapper)
}

// cleanup 定期清理空闲的限流器
func (l *standaloneLimiter) cleanup(interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := l.evictIdle(time.Now(), idleTimeout); n > 0 {
				l.logger.Debug("cleaned up idle limiters", clog.Int("count", n))
			}
		case <-l.stopCh:
			return
		}
	}
}

func (l *standaloneLimiter) evictIdle(now time.Time, idleTimeout time.Duration) int {
	count := 0
	l.limiters.Range(func(key, value any) bool {
		w := value.(*limiterWrapper)
		w.mu.Lock()
		idle := now.Sub(w.lastSeen)
		w.mu.Unlock()

		if idle > idleTimeout {
			l.limiters.Delete(key)
			count++
		}
		return true
	})
	return count
}

// Close 停止后台清理，可重复调用
func (l *standaloneLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stopCh) })
	return nil
}
