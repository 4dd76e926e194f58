// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
// **1. Counter（计数器）**：只增不减的累计值，如HTTP请求总数、图书操作次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值，如正在处理的请求数
//
// **3. Histogram（直方图）**：观测值的分布，如HTTP请求耗时
//
// # 命名规范
//
//   - Counter 以`_total`结尾：`http_requests_total`、`book_operations_total`
//   - Histogram 以单位结尾：`http_request_duration_seconds`
//
// # 标签
//
// 只用有限取值的维度做标签（method、route、status、operation、result），
// 不要用图书ID、ISBN这类高基数字段。路由标签使用gin的路由模板（/books/:id），不是真实路径。
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookOperationsTotal 图书领域服务调用次数
	// 标签：operation（create/update/delete/get/list/isbn_check）、result（success/not_found/failure）
	BookOperationsTotal *prometheus.CounterVec

	// 缓存指标

	// CacheRequestsTotal 图书缓存访问次数
	// 标签：result（hit/miss/error/bypass），bypass表示熔断期间跳过缓存
	CacheRequestsTotal *prometheus.CounterVec
)

// InitMetrics 初始化并注册所有指标
// 可重复调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书服务操作次数",
			},
			[]string{"operation", "result"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书缓存访问次数",
			},
			[]string{"result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// RecordBookOperation 记录一次图书服务调用
func RecordBookOperation(operation, result string) {
	InitMetrics()
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheResult 记录一次缓存访问
func RecordCacheResult(result string) {
	InitMetrics()
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
