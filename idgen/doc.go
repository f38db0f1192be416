// Package idgen 提供无中心协调的 64 位分布式 ID 生成能力（Snowflake 风格）。
//
// ID 位布局（从高到低）：
//
//	0 | timestamp(41) | datacenter_id(5) | worker_id(5) | sequence(12)
//
// timestamp 为相对 Epoch 的毫秒数，41 位可覆盖约 69 年。
//
// 身份来源：
//   - 显式配置的 DatacenterID / WorkerID 始终优先
//   - 未配置时由 Resolver 从本机硬件地址与进程号推导，推导是尽力而为的，
//     大规模集群中并不能保证无冲突，需要强保证时请显式配置
//
// 时钟回拨：Next 直接返回 ErrClockMovedBackwards，不等待也不重试，
// 如何处理（重试、告警、摘除实例）由调用方决定。
//
// 快速开始：
//
//	sf, err := idgen.New(&idgen.GeneratorConfig{}, idgen.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	id, err := sf.Next()
//
// 包内不提供全局生成器，在进程启动时创建一个 Snowflake 并通过依赖注入传递。
package idgen
