package idgen

import (
	"runtime"
	"time"
)

// Clock 毫秒时钟
type Clock interface {
	NowMilli() int64
}

// SystemClock 使用系统墙上时间
type SystemClock struct{}

func (SystemClock) NowMilli() int64 {
	return time.Now().UnixMilli()
}

// ClockFunc 将普通函数适配为 Clock，便于测试注入
type ClockFunc func() int64

func (f ClockFunc) NowMilli() int64 {
	return f()
}

// Waiter 序列号耗尽时等待时钟前进的策略
//
// WaitNext 必须返回一个严格大于 last 的时钟读数。
type Waiter interface {
	WaitNext(clock Clock, last int64) int64
}

// SpinWaiter 忙等直到时钟越过 last
//
// 每次循环都重新读取时钟以保持毫秒精度，并通过 runtime.Gosched 让出调度器。
// 等待时长通常不超过 1ms。
type SpinWaiter struct{}

func (SpinWaiter) WaitNext(clock Clock, last int64) int64 {
	now := clock.NowMilli()
	for now <= last {
		runtime.Gosched()
		now = clock.NowMilli()
	}
	return now
}
