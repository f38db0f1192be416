package idgen

import (
	"github.com/ceyewan/idforge/clog"
	"github.com/ceyewan/idforge/metrics"
)

// Option 生成器初始化选项
type Option func(*options)

type options struct {
	logger  clog.Logger
	meter   metrics.Meter
	clock   Clock
	waiter  Waiter
	network NetworkSource
	process ProcessSource
}

func defaultOptions() *options {
	return &options{
		logger:  clog.Discard(),
		meter:   metrics.Discard(),
		clock:   SystemClock{},
		waiter:  SpinWaiter{},
		network: SystemNetworkSource{},
		process: SystemProcessSource{},
	}
}

// WithLogger 设置 Logger，自动添加 "idgen" 命名空间
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.WithNamespace("idgen")
		}
	}
}

// WithMeter 设置 Meter
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// WithClock 替换时钟，主要用于测试
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithWaiter 替换序列号耗尽时的等待策略
func WithWaiter(waiter Waiter) Option {
	return func(o *options) {
		if waiter != nil {
			o.waiter = waiter
		}
	}
}

// WithNetworkSource 替换硬件地址来源
func WithNetworkSource(src NetworkSource) Option {
	return func(o *options) {
		if src != nil {
			o.network = src
		}
	}
}

// WithProcessSource 替换进程号来源
func WithProcessSource(src ProcessSource) Option {
	return func(o *options) {
		if src != nil {
			o.process = src
		}
	}
}
