package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

// main 填充测试数据
//
// 用法：
//
//	go run ./cmd/seed -count 20
//
// 数据经过领域服务写入（和接口走同一条路径），已存在的ISBN会跳过
func main() {
	count := flag.Int("count", 20, "要生成的图书数量")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Options())
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.NewDB(cfg)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("数据库迁移失败", zap.Error(err))
	}

	bookService := book.NewService(database.NewBookRepository(db, database.NewTxManager(db)))

	ctx := context.Background()
	now := time.Now()
	factory := newBookFactory(rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)), now.Year())

	created, skipped, err := seed(ctx, bookService, factory, *count)
	if err != nil {
		zlog.Fatal("写入图书失败", zap.Int("created", created), zap.Error(err))
	}

	zlog.Info("数据填充完成", zap.Int("created", created), zap.Int("skipped", skipped))
}

// seed 生成count本图书，返回成功数和因ISBN已存在而跳过的数量
func seed(ctx context.Context, svc book.Service, factory *bookFactory, count int) (created, skipped int, err error) {
	for i := 0; i < count; i++ {
		attrs := factory.Next()

		taken, err := svc.ISBNTaken(ctx, attrs.ISBN, 0)
		if err != nil {
			return created, skipped, err
		}
		if taken {
			skipped++
			continue
		}

		if _, err := svc.CreateBook(ctx, attrs); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
