package idgen

import (
	"context"
	"strconv"

	"github.com/ceyewan/idforge/metrics"
)

// 指标名称
const (
	// MetricSnowflakeGenerated 成功生成的 ID 总数 (Counter)
	MetricSnowflakeGenerated = "idgen_snowflake_generated_total"

	// MetricClockBackwards 检测到时钟回拨的次数 (Counter)
	MetricClockBackwards = "idgen_clock_backwards_total"

	// MetricSequenceExhausted 单毫秒序列号耗尽、需要等待下一毫秒的次数 (Counter)
	MetricSequenceExhausted = "idgen_sequence_exhausted_total"
)

type instruments struct {
	generated metrics.Counter
	backwards metrics.Counter
	exhausted metrics.Counter
	labels    []metrics.Label
}

func newInstruments(m metrics.Meter, datacenterID, workerID int64) (*instruments, error) {
	generated, err := m.Counter(MetricSnowflakeGenerated, "Total number of snowflake ids generated.")
	if err != nil {
		return nil, err
	}
	backwards, err := m.Counter(MetricClockBackwards, "Total number of clock regressions detected.")
	if err != nil {
		return nil, err
	}
	exhausted, err := m.Counter(MetricSequenceExhausted, "Total number of per-millisecond sequence exhaustions.")
	if err != nil {
		return nil, err
	}
	return &instruments{
		generated: generated,
		backwards: backwards,
		exhausted: exhausted,
		labels: []metrics.Label{
			metrics.L("datacenter_id", strconv.FormatInt(datacenterID, 10)),
			metrics.L("worker_id", strconv.FormatInt(workerID, 10)),
		},
	}, nil
}

func (i *instruments) observe(generated, exhausted int) {
	ctx := context.Background()
	i.generated.Add(ctx, float64(generated), i.labels...)
	if exhausted > 0 {
		i.exhausted.Add(ctx, float64(exhausted), i.labels...)
	}
}
