package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type captureCounter struct {
	records [][]Label
}

func (c *captureCounter) Inc(_ context.Context, labels ...Label) {
	c.records = append(c.records, append([]Label(nil), labels...))
}

func (c *captureCounter) Add(ctx context.Context, _ float64, labels ...Label) {
	c.Inc(ctx, labels...)
}

type captureHistogram struct {
	records [][]Label
}

func (h *captureHistogram) Record(_ context.Context, _ float64, labels ...Label) {
	h.records = append(h.records, append([]Label(nil), labels...))
}

func labelValue(labels []Label, key string) string {
	for _, label := range labels {
		if label.Key == key {
			return label.Value
		}
	}
	return ""
}

func TestGinHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		path        string
		wantRoute   string
		wantClass   string
		wantOutcome string
	}{
		{name: "matched route", path: "/ids/next", wantRoute: "/ids/next", wantClass: "2xx", wantOutcome: OutcomeSuccess},
		{name: "unmatched path", path: "/nope/123", wantRoute: UnknownRoute, wantClass: "4xx", wantOutcome: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &captureCounter{}
			histogram := &captureHistogram{}
			httpMetrics := &HTTPServerMetrics{service: "svc", requestTotal: counter, duration: histogram}

			router := gin.New()
			router.Use(GinHTTPMiddleware(httpMetrics))
			router.GET("/ids/next", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if len(counter.records) != 1 || len(histogram.records) != 1 {
				t.Fatalf("records = %d/%d, want 1/1", len(counter.records), len(histogram.records))
			}
			labels := counter.records[0]
			if got := labelValue(labels, LabelRoute); got != tt.wantRoute {
				t.Errorf("route = %q, want %q", got, tt.wantRoute)
			}
			if got := labelValue(labels, LabelStatusClass); got != tt.wantClass {
				t.Errorf("status_class = %q, want %q", got, tt.wantClass)
			}
			if got := labelValue(labels, LabelOutcome); got != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", got, tt.wantOutcome)
			}
			if got := labelValue(labels, LabelService); got != "svc" {
				t.Errorf("service = %q, want svc", got)
			}
		})
	}
}

func TestGinHTTPMiddlewareNilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinHTTPMiddleware(nil))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestHTTPStatusClass(t *testing.T) {
	cases := map[int]string{99: "unknown", 200: "2xx", 302: "3xx", 404: "4xx", 503: "5xx", 600: "unknown"}
	for status, want := range cases {
		if got := HTTPStatusClass(status); got != want {
			t.Errorf("HTTPStatusClass(%d) = %q, want %q", status, got, want)
		}
	}
}
