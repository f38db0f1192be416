package metrics

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ceyewan/idforge/clog"
)

func scrape(t *testing.T, m Meter) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("scrape status = %d, want 200", w.Code)
	}
	return w.Body.String()
}

// sampleValue 返回名称为 name 的第一条样本的值文本
func sampleValue(body, name string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, name+"{") || strings.HasPrefix(line, name+" ") {
			fields := strings.Fields(line)
			return fields[len(fields)-1], true
		}
	}
	return "", false
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
		noop    bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "disabled", cfg: &Config{Enabled: false}, noop: true},
		{name: "enabled", cfg: &Config{Enabled: true, ServiceName: "test", Version: "v0"}},
		{name: "dev default", cfg: NewDevDefaultConfig("test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := clog.New(&clog.Config{Level: "error", Format: "console", Output: "stderr"})
			meter, err := New(tt.cfg, WithLogger(logger))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, ok := meter.(noopMeter); ok != tt.noop {
				t.Errorf("noop = %v, want %v", ok, tt.noop)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := meter.Shutdown(ctx); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestMeterHandlerExposesCounter(t *testing.T) {
	meter := Must(NewDevDefaultConfig("test"))
	defer meter.Shutdown(context.Background())

	ctx := context.Background()
	counter, err := meter.Counter("test_generated_total", "generated ids")
	if err != nil {
		t.Fatalf("Counter() error = %v", err)
	}
	counter.Inc(ctx, L("worker_id", "1"))
	counter.Inc(ctx, L("worker_id", "1"))
	counter.Add(ctx, 3, L("worker_id", "1"))
	counter.Add(ctx, -10, L("worker_id", "1"))

	body := scrape(t, meter)
	value, ok := sampleValue(body, "test_generated_total")
	if !ok {
		t.Fatalf("test_generated_total not exposed:\n%s", body)
	}
	if value != "5" {
		t.Errorf("counter value = %s, want 5", value)
	}
	if !strings.Contains(body, `worker_id="1"`) {
		t.Errorf("label worker_id missing:\n%s", body)
	}
}

func TestGaugeIncDec(t *testing.T) {
	meter := Must(NewDevDefaultConfig("test"))
	defer meter.Shutdown(context.Background())

	ctx := context.Background()
	gauge, err := meter.Gauge("test_active", "active things")
	if err != nil {
		t.Fatalf("Gauge() error = %v", err)
	}
	gauge.Inc(ctx)
	gauge.Inc(ctx)
	gauge.Dec(ctx)

	value, ok := sampleValue(scrape(t, meter), "test_active")
	if !ok || value != "1" {
		t.Errorf("gauge value = %q (found=%v), want 1", value, ok)
	}

	gauge.Set(ctx, 42)
	value, _ = sampleValue(scrape(t, meter), "test_active")
	if value != "42" {
		t.Errorf("gauge value after Set = %q, want 42", value)
	}
}

func TestHistogramBuckets(t *testing.T) {
	meter := Must(NewDevDefaultConfig("test"))
	defer meter.Shutdown(context.Background())

	h, err := meter.Histogram("test_latency", "latency", WithBuckets([]float64{0.1, 1}))
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	h.Record(context.Background(), 0.5)

	body := scrape(t, meter)
	if !strings.Contains(body, `le="0.1"`) || !strings.Contains(body, `le="1"`) {
		t.Errorf("explicit buckets missing:\n%s", body)
	}
	if value, _ := sampleValue(body, "test_latency_count"); value != "1" {
		t.Errorf("histogram count = %q, want 1", value)
	}
}

func TestDiscard(t *testing.T) {
	meter := Discard()
	ctx := context.Background()

	c, _ := meter.Counter("x", "x")
	g, _ := meter.Gauge("y", "y")
	h, _ := meter.Histogram("z", "z")
	c.Inc(ctx)
	g.Set(ctx, 1)
	h.Record(ctx, 1)

	w := httptest.NewRecorder()
	meter.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("discard handler status = %d, want 404", w.Code)
	}
}
