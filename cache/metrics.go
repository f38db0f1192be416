package cache

import (
	"context"

	"github.com/ceyewan/idforge/metrics"
	"github.com/ceyewan/idforge/xerrors"
)

// MetricRequests 读操作次数，按 op 与 result(hit|miss|error) 分组 (Counter)
const MetricRequests = "cache_requests_total"

type instruments struct {
	requests metrics.Counter
	mode     string
}

func newInstruments(m metrics.Meter, mode string) (*instruments, error) {
	requests, err := m.Counter(MetricRequests, "Total number of cache read requests.")
	if err != nil {
		return nil, err
	}
	return &instruments{requests: requests, mode: mode}, nil
}

func (i *instruments) observe(ctx context.Context, op string, err error) {
	result := "hit"
	switch {
	case err == nil:
	case xerrors.Is(err, ErrMiss):
		result = "miss"
	default:
		result = "error"
	}
	i.requests.Inc(ctx,
		metrics.L("mode", i.mode),
		metrics.L("op", op),
		metrics.L("result", result),
	)
}
