// Package ratelimit 提供基于令牌桶的单机限流组件，用于保护发号接口。
//
// 发号服务按"签发的 ID 数量"计费：单次请求 1 个 ID 消耗 1 个令牌，
// 批量请求 n 个 ID 消耗 n 个令牌（见 AllowN 与 GinMiddleware 的 costFunc）。
//
// ## 基本使用
//
//	limiter, _ := ratelimit.NewStandalone(&ratelimit.StandaloneConfig{
//	    CleanupInterval: time.Minute,
//	    IdleTimeout:     5 * time.Minute,
//	}, ratelimit.WithLogger(logger), ratelimit.WithMeter(meter))
//	defer limiter.Close()
//
//	allowed, _ := limiter.AllowN(ctx, "client:10.0.0.1", ratelimit.Limit{Rate: 1000, Burst: 4096}, 128)
//
// ## Gin 中间件
//
//	r.Use(ratelimit.GinMiddleware(limiter, nil,
//	    func(*gin.Context) ratelimit.Limit { return ratelimit.Limit{Rate: 1000, Burst: 4096} },
//	    nil, // 默认每个请求消耗 1 个令牌
//	))
package ratelimit

import (
	"context"
	"time"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Limit 定义限流规则（令牌桶算法）
type Limit struct {
	Rate  float64 `json:"rate" yaml:"rate" mapstructure:"rate"`    // 令牌生成速率（每秒生成多少个令牌）
	Burst int     `json:"burst" yaml:"burst" mapstructure:"burst"` // 令牌桶容量（突发最大请求数）
}

func (l Limit) valid() bool {
	return l.Rate > 0 && l.Burst > 0
}

// Limiter 限流器核心接口
type Limiter interface {
	// Allow 尝试获取 1 个令牌（非阻塞）
	// 返回: allowed（是否允许）, error（参数错误）
	Allow(ctx context.Context, key string, limit Limit) (bool, error)

	// AllowN 尝试获取 N 个令牌（非阻塞），n 超过 Burst 时永远不会被允许
	AllowN(ctx context.Context, key string, limit Limit, n int) (bool, error)

	// Wait 阻塞直到获取 1 个令牌或 ctx 结束
	Wait(ctx context.Context, key string, limit Limit) error

	// Close 停止后台清理
	Close() error
}

// ========================================
// 配置定义 (Configuration)
// ========================================

// StandaloneConfig 单机限流配置
type StandaloneConfig struct {
	// CleanupInterval 清理空闲限流器的间隔（默认：1 分钟）
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" mapstructure:"cleanup_interval"`

	// IdleTimeout 限流器空闲超时时间（默认：5 分钟）
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

func (c *StandaloneConfig) setDefaults() {
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Minute
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 5 * time.Minute
	}
}

// ========================================
// 工厂函数 (Factory Functions)
// ========================================

// NewStandalone 创建单机限流器，cfg 为 nil 时使用默认配置
func NewStandalone(cfg *StandaloneConfig, opts ...Option) (Limiter, error) {
	if cfg == nil {
		cfg = &StandaloneConfig{}
	}
	cfg.setDefaults()

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	opt.applyDefaults()

	inst, err := newInstruments(opt.meter)
	if err != nil {
		return nil, err
	}
	return newStandalone(cfg, opt.logger, inst), nil
}
