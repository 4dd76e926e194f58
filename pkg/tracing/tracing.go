// Package tracing 提供基于OpenTelemetry的链路追踪
//
// # 核心概念
//
// 1. **Trace（追踪）**：一个完整的请求链路，例如一次 PUT /books/1
// 2. **Span（跨度）**：链路中的一个操作单元，例如 book.Service/update
// 3. **SpanContext**：TraceID + SpanID，用于关联日志和父子Span
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer(ctx, tracing.Options{
//	    ServiceName: "bookcatalog",
//	    Endpoint:    "localhost:4317",
//	    SampleRatio: 1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "bookcatalog/book", "book.Service/create")
//	defer span.End()
//
// 未调用InitTracer时，otel全局Provider是no-op实现，StartSpan可以安全调用。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Options Tracer配置
type Options struct {
	ServiceName string  // 服务名称（在Jaeger UI中显示）
	Endpoint    string  // OTLP gRPC端点，如 localhost:4317
	SampleRatio float64 // 采样比例，1表示全部采样
	Insecure    bool    // 禁用TLS（本地开发）
}

// InitTracer 初始化全局Tracer Provider
//
// 设计要点：
// 1. 使用OTLP gRPC协议，厂商中立（Jaeger、Tempo都支持）
// 2. 采样策略：ParentBased(TraceIDRatioBased)，上游已采样的请求保持采样
// 3. 返回shutdown函数，程序退出前调用以刷新剩余Span
func InitTracer(ctx context.Context, opts Options) (func(context.Context) error, error) {
	exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}

	// otlptracegrpc.New不会阻塞等待连接建立
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(opts.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := NewProvider(res, opts.SampleRatio, sdktrace.WithBatcher(exporter))
	Install(tp)

	shutdown := func(ctx context.Context) error {
		// 最多等待5秒，防止退出时阻塞
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// NewProvider 创建TracerProvider
// 测试时传入 sdktrace.WithSpanProcessor(recorder) 即可拿到内存中的Span
func NewProvider(res *resource.Resource, sampleRatio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))
	if sampleRatio >= 1 {
		sampler = sdktrace.AlwaysSample()
	}

	all := []sdktrace.TracerProviderOption{sdktrace.WithSampler(sampler)}
	if res != nil {
		all = append(all, sdktrace.WithResource(res))
	}
	all = append(all, opts...)

	return sdktrace.NewTracerProvider(all...)
}

// Install 设置全局TracerProvider和W3C传播器
func Install(tp trace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},
		),
	)
}

// StartSpan 创建一个新的Span
// ctx中已有Span时，新Span成为它的子Span
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}
