package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/validation"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// NewRouter 创建Gin引擎并注册全部路由
//
// 中间件执行顺序：Recovery → Logger → Tracing → Metrics → RateLimit → Handler
// Recovery放在最外层，后面任何中间件panic都能被捕获
//
// limiter为nil时不限流
func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	bookHandler *handler.BookHandler,
	healthHandler *handler.HealthHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	// 注册自定义校验规则（gin的binding也共用这个引擎）
	validation.Engine()

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Tracing())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.ErrMethodNotAllowed)
	})

	// 运维端点
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 同一套路由同时挂在根路径和/api下
	registerRoutes(&r.RouterGroup, bookHandler, healthHandler)
	registerRoutes(r.Group("/api"), bookHandler, healthHandler)

	return r
}

// registerRoutes 图书资源路由（apiResource风格）
func registerRoutes(g *gin.RouterGroup, bookHandler *handler.BookHandler, healthHandler *handler.HealthHandler) {
	g.GET("/ping", healthHandler.Ping)

	books := g.Group("/books")
	{
		books.GET("", bookHandler.Index)
		books.POST("", bookHandler.Store)
		books.GET("/:id", bookHandler.Show)
		books.PUT("/:id", bookHandler.Update)
		books.PATCH("/:id", bookHandler.Update)
		books.DELETE("/:id", bookHandler.Destroy)
	}
}
