// Package connector 管理外部存储的连接生命周期，目前提供 Redis 连接器。
//
// 约定：
//   - NewXXX 只创建连接器，不建立连接；Connect 时才真正连接，且可重复调用
//   - 连接器拥有底层连接，调用方负责 Close；cache 等组件只借用连接器
//   - 所有公开方法并发安全
//
// 基本使用：
//
//	conn, err := connector.NewRedis(&connector.RedisConfig{Addr: "127.0.0.1:6379"},
//		connector.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := conn.Connect(ctx); err != nil {
//		return err
//	}
//	client := conn.GetClient()
package connector

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Connector 所有连接器的通用行为
type Connector interface {
	// Connect 建立连接，幂等
	Connect(ctx context.Context) error
	// Close 关闭连接并释放资源，幂等
	Close() error
	// HealthCheck 主动探测连接状态
	HealthCheck(ctx context.Context) error
	// IsHealthy 返回最近一次探测的结果
	IsHealthy() bool
	// Name 连接器名称，用于日志与指标
	Name() string
}

// TypedConnector 暴露类型安全的底层客户端
type TypedConnector[T any] interface {
	Connector
	GetClient() T
}

// RedisConnector Redis 连接器
type RedisConnector interface {
	TypedConnector[*redis.Client]
}
