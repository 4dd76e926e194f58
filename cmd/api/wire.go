//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets （依赖分组）
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、Redis连接、事务管理器
var infrastructureSet = wire.NewSet(
	provideDB,             // 数据库连接（mysql/postgres/sqlite）
	provideRedisClient,    // Redis连接（缓存关闭时为nil）
	database.NewTxManager, // 事务管理器
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	provideBookRepository, // 图书仓储（可选Redis缓存装饰）
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase, // 图书分页列表用例
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,   // 图书处理器
	handler.NewHealthHandler, // 健康检查
)

// httpSet 中间件和路由
var httpSet = wire.NewSet(
	provideRateLimiter, // 限流器（rps为0时为nil）
	router.NewRouter,   // Gin引擎 + 路由表
)

// ========================================
// Wire Injector （依赖注入器）
// ========================================
// 依赖链：
// *gin.Engine 需要 → *handler.BookHandler
// *handler.BookHandler 需要 → book.Service + *appbook.ListBooksUseCase
// book.Service 需要 → book.Repository
// book.Repository 需要 → *gorm.DB + *database.TxManager + *redis.Client
//
// 配置和日志在main中先初始化（启动失败时也要能打日志），作为参数传进来

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎、释放资源的cleanup函数
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		httpSet,
	)
	return nil, nil, nil
}
