package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	t.Run("生成请求ID并记录日志", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/ping", nil)

		requestID := rec.Header().Get(RequestIDHeader)
		assert.Len(t, requestID, 36)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, requestID, fields["request_id"])
		assert.Equal(t, "/ping", fields["path"])
		assert.EqualValues(t, 200, fields["status"])
	})

	t.Run("沿用客户端的请求ID", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"abc-123"}})

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
	})

	t.Run("5xx记为错误", func(t *testing.T) {
		serve(r, http.MethodGet, "/boom", nil)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	rec := serve(r, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Close()

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/books", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/books", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/books", nil).Code)

	rec := serve(r, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too Many Attempts."}`, rec.Body.String())

	// 不同客户端互不影响
	other := httptest.NewRequest(http.MethodGet, "/books", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	otherRec := httptest.NewRecorder()
	r.ServeHTTP(otherRec, other)
	assert.Equal(t, http.StatusOK, otherRec.Code)
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/books/:id", "404")
	before := testutil.ToFloat64(counter)

	serve(r, http.MethodGet, "/books/1", nil)
	serve(r, http.MethodGet, "/books/2", nil)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
