package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title           Book Catalog API
// @version         1.0
// @description     图书目录服务：图书的增删改查与分页列表
// @host            localhost:8080
// @BasePath        /

// main 主程序入口
//
// 教学要点：
// 1. 启动顺序：配置 → 日志 → Tracing → Wire组装依赖 → HTTP服务器
// 2. 优雅关闭：捕获信号，等待进行中的请求结束，再释放数据库/Redis连接
func main() {
	// 步骤1: 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 步骤2: 初始化日志（替换zap全局logger）
	zlog, err := logger.New(cfg.Log.Options())
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	// 步骤3: 初始化Tracing（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			zlog.Fatal("初始化Tracing失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("关闭Tracing失败", zap.Error(err))
			}
		}()
	}

	// 步骤4: 组装依赖（wire_gen.go）
	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 步骤5: 启动HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("服务启动成功", zap.String("addr", srv.Addr))
		if cfg.Server.Swagger {
			zlog.Info("API文档", zap.String("url", fmt.Sprintf("http://localhost%s/swagger/index.html", srv.Addr)))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 步骤6: 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在优雅关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务器强制关闭", zap.Error(err))
	}

	zlog.Info("服务已关闭")
}
