package clog

import (
	"fmt"
	"sync/atomic"
)

type loggerHolder struct {
	logger Logger
}

var defaultLogger atomic.Pointer[loggerHolder]

// New 创建一个新的 Logger 实例
//
// config - 日志配置，如果为 nil 会使用开发环境默认配置
// opts   - 函数式选项列表，用于命名空间、Context 字段等配置
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = NewDevDefaultConfig("")
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return newLogger(config, applyOptions(opts...))
}

// Default 返回进程级默认 Logger，未设置时惰性创建一个输出到 stdout 的 info 级别 Logger。
func Default() Logger {
	if h := defaultLogger.Load(); h != nil {
		return h.logger
	}
	l, err := New(&Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		l = Discard()
	}
	defaultLogger.CompareAndSwap(nil, &loggerHolder{logger: l})
	return defaultLogger.Load().logger
}

// SetDefault 替换进程级默认 Logger，nil 会被忽略。
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&loggerHolder{logger: l})
	}
}
