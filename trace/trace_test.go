package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ceyewan/idforge/xerrors"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestInit_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		code string
	}{
		{"nil config", nil, "config_nil"},
		{"missing service", &Config{}, "service_name_required"},
		{"sampler too large", &Config{ServiceName: "s", Sampler: 1.5}, "sampler_out_of_range"},
		{"unknown batcher", &Config{ServiceName: "s", Batcher: "kafka"}, "unsupported_batcher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Init(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, shutdown)
			assert.True(t, xerrors.Is(err, xerrors.ErrInvalidInput))
			assert.Equal(t, tt.code, xerrors.GetCode(err))
		})
	}
}

func TestInit_WithoutEndpoint(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := Init(&Config{ServiceName: "idforge-test", Sampler: 1})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().TraceID().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestInit_WithEndpoint(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	// gRPC 连接是惰性的，创建 exporter 不需要 collector 在线
	cfg := DefaultConfig("idforge-test")
	cfg.Batcher = BatcherSimple
	shutdown, err := Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestGinMiddleware_AnnotateIssued(t *testing.T) {
	recorder := setupRecorder(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware("idforge-test"))
	r.GET("/ids/batch", func(c *gin.Context) {
		AnnotateIssued(c.Request.Context(), 16, 1, 2)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ids/batch?n=16", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/ids/batch")

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(16), attrs[AttrIDCount].AsInt64())
	assert.Equal(t, int64(1), attrs[AttrDatacenterID].AsInt64())
	assert.Equal(t, int64(2), attrs[AttrWorkerID].AsInt64())
}

func TestAnnotateIssued_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		AnnotateIssued(context.Background(), 1, 0, 0)
	})
}
