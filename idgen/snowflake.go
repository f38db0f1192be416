package idgen

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ceyewan/idforge/clog"
	"github.com/ceyewan/idforge/xerrors"
)

// MaxBatchSize NextN 单次最多生成的 ID 数量
const MaxBatchSize = 4096

// Snowflake 雪花算法生成器
//
// 同一实例上的 Next 调用是并发安全的，返回值严格递增。
// 不同实例之间互不共享状态，跨实例唯一性依赖于 (datacenterID, workerID) 组合互不相同，
// 生成器本身不做校验。
type Snowflake struct {
	mu            sync.Mutex
	lastTimestamp int64
	sequence      sequenceCounter

	datacenterID int64
	workerID     int64
	epoch        time.Time
	epochMilli   int64

	clock   Clock
	waiter  Waiter
	logger  clog.Logger
	metrics *instruments
}

// New 创建 Snowflake 生成器
//
// 配置非法时返回包装了 ErrInvalidConfig 的错误。未显式配置的 ID 由 Resolver 推导，
// 推导失败只记录日志并回退，不会导致 New 失败。
//
//	sf, err := idgen.New(&idgen.GeneratorConfig{
//	    DatacenterID: idgen.Int64(1),
//	    WorkerID:     idgen.Int64(2),
//	}, idgen.WithLogger(logger), idgen.WithMeter(meter))
func New(cfg *GeneratorConfig, opts ...Option) (*Snowflake, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, CodeConfigNil)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := *cfg
	c.setDefaults()
	if err := c.validate(o.clock.NowMilli()); err != nil {
		return nil, err
	}

	resolver := &Resolver{Network: o.network, Process: o.process, Logger: o.logger}

	var datacenterID int64
	if c.DatacenterID != nil {
		datacenterID = *c.DatacenterID
	} else {
		datacenterID = resolver.DatacenterID(c.MaxDatacenterID)
	}

	var workerID int64
	if c.WorkerID != nil {
		workerID = *c.WorkerID
	} else {
		workerID = resolver.WorkerID(datacenterID, c.MaxWorkerID)
	}

	inst, err := newInstruments(o.meter, datacenterID, workerID)
	if err != nil {
		return nil, xerrors.Wrap(err, "create idgen metrics")
	}

	sf := &Snowflake{
		lastTimestamp: -1,
		datacenterID:  datacenterID,
		workerID:      workerID,
		epoch:         c.Epoch,
		epochMilli:    c.Epoch.UnixMilli(),
		clock:         o.clock,
		waiter:        o.waiter,
		logger:        o.logger,
		metrics:       inst,
	}

	sf.logger.Info("snowflake generator created",
		clog.Int64("datacenter_id", datacenterID),
		clog.Int64("worker_id", workerID),
		clog.Bool("datacenter_id_derived", c.DatacenterID == nil),
		clog.Bool("worker_id_derived", c.WorkerID == nil),
		clog.Time("epoch", c.Epoch),
	)
	return sf, nil
}

// Next 生成一个 ID
//
// 时钟回拨时返回包装了 ErrClockMovedBackwards 的错误，内部状态保持不变。
// 当前毫秒序列号耗尽时会自旋等待下一毫秒，通常不超过 1ms。
func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	id, exhausted, err := s.nextLocked()
	s.mu.Unlock()

	if err != nil {
		s.reportError(err)
		return 0, err
	}
	s.metrics.observe(1, boolToInt(exhausted))
	return id, nil
}

// NextN 在一次临界区内生成 n 个连续递增的 ID，n 取值 [1, MaxBatchSize]
//
// 中途出错时丢弃已生成的部分并返回错误。
func (s *Snowflake) NextN(n int) ([]int64, error) {
	if n <= 0 || n > MaxBatchSize {
		return nil, xerrors.Wrapf(xerrors.ErrInvalidInput, "batch size %d out of range [1, %d]", n, MaxBatchSize)
	}

	ids := make([]int64, 0, n)
	exhaustedCount := 0

	s.mu.Lock()
	var err error
	for len(ids) < n {
		var (
			id        int64
			exhausted bool
		)
		id, exhausted, err = s.nextLocked()
		if err != nil {
			break
		}
		ids = append(ids, id)
		exhaustedCount += boolToInt(exhausted)
	}
	s.mu.Unlock()

	if err != nil {
		s.reportError(err)
		return nil, err
	}
	s.metrics.observe(n, exhaustedCount)
	return ids, nil
}

// NextString 返回十进制字符串形式的 ID，适用于无法精确表示 64 位整数的客户端
func (s *Snowflake) NextString() (string, error) {
	id, err := s.Next()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// MustNext 类似 Next，但出错时 panic
func (s *Snowflake) MustNext() int64 {
	return xerrors.Must(s.Next())
}

// nextLocked 必须在持有 s.mu 时调用
func (s *Snowflake) nextLocked() (id int64, exhausted bool, err error) {
	now := s.clock.NowMilli()

	if now < s.lastTimestamp {
		return 0, false, xerrors.Wrapf(ErrClockMovedBackwards,
			"drift %dms (last %d, now %d)", s.lastTimestamp-now, s.lastTimestamp, now)
	}

	// 出错返回前恢复序列号，保证失败调用不改变状态
	prev := s.sequence.value
	seq, rolledOver := s.sequence.incrementOrWrap(now, s.lastTimestamp)
	if rolledOver {
		now = s.waiter.WaitNext(s.clock, s.lastTimestamp)
		if now <= s.lastTimestamp {
			s.sequence.value = prev
			return 0, true, xerrors.Wrapf(ErrClockMovedBackwards,
				"waiter returned %d, want > %d", now, s.lastTimestamp)
		}
		seq = 0
	}

	delta := now - s.epochMilli
	if delta < 0 || delta > MaxTimestamp {
		s.sequence.value = prev
		return 0, rolledOver, xerrors.Wrapf(ErrTimestampOverflow,
			"%dms since epoch %s", delta, s.epoch.Format(time.RFC3339))
	}

	s.lastTimestamp = now
	return Encode(Parts{
		Timestamp:    delta,
		DatacenterID: s.datacenterID,
		WorkerID:     s.workerID,
		Sequence:     seq,
	}), rolledOver, nil
}

func (s *Snowflake) reportError(err error) {
	if xerrors.Is(err, ErrClockMovedBackwards) {
		s.metrics.backwards.Inc(context.Background(), s.metrics.labels...)
	}
	s.logger.Error("failed to generate id", clog.Error(err))
}

// DatacenterID 返回生成器的数据中心 ID
func (s *Snowflake) DatacenterID() int64 { return s.datacenterID }

// WorkerID 返回生成器的工作节点 ID
func (s *Snowflake) WorkerID() int64 { return s.workerID }

// Epoch 返回生成器的时间戳基准
func (s *Snowflake) Epoch() time.Time { return s.epoch }

// Decode 拆解 ID，Timestamp 为相对生成器 Epoch 的毫秒数
func (s *Snowflake) Decode(id int64) Parts {
	return Decode(id)
}

// Time 返回 ID 中携带的生成时间
func (s *Snowflake) Time(id int64) time.Time {
	return Decode(id).Time(s.epoch)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
