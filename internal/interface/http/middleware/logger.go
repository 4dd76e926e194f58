package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RequestIDHeader 请求ID的HTTP头
const RequestIDHeader = "X-Request-ID"

// SlowRequestThreshold 超过这个耗时的请求记为慢请求
const SlowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
//
// 教学要点：
// 1. 记录每个请求的基本信息（方法、路径、耗时、状态码）
// 2. 生成唯一的请求ID，客户端传了X-Request-ID时沿用
// 3. 结构化日志输出（zap），带上TraceID便于和链路关联
//
// DON'T：
// - 记录敏感信息（密码、Token）
// - 记录完整的请求体（可能很大，影响性能）
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 步骤2: 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 步骤3: 记录请求信息
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case latency > SlowRequestThreshold:
			log.Warn("slow request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
