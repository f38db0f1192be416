package trace

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Span 属性键
const (
	AttrIDCount      = attribute.Key("idforge.ids.count")
	AttrDatacenterID = attribute.Key("idforge.datacenter_id")
	AttrWorkerID     = attribute.Key("idforge.worker_id")
)

// GinMiddleware 返回 Gin 跟踪中间件，每个请求一个 Server Span
func GinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// AnnotateIssued 在当前 Span 上记录本次签发的 ID 数量与生成器坐标
//
// ctx 中没有 Span 时为空操作。
func AnnotateIssued(ctx context.Context, count int, datacenterID, workerID int64) {
	span := oteltrace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		AttrIDCount.Int(count),
		AttrDatacenterID.Int64(datacenterID),
		AttrWorkerID.Int64(workerID),
	)
}
