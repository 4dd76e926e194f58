package main

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
)

// ========================================
// Custom Providers （自定义Provider）
// ========================================
// 教学说明：
// 构造函数的参数不能直接由其他Provider提供（需要读Config、需要cleanup）时，
// 在这里写一层薄包装交给Wire

// provideDB 数据库连接 + 关闭函数
// 教学要点：Provider返回cleanup函数，Wire会把所有cleanup按相反顺序串起来
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedisClient Redis客户端，缓存关闭时为nil
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// provideBookRepository 图书仓储
// 开启缓存时用Redis装饰器包一层，领域层感知不到区别
func provideBookRepository(cfg *config.Config, db *gorm.DB, tx *database.TxManager, client *goredis.Client) book.Repository {
	repo := database.NewBookRepository(db, tx)
	if client == nil {
		return repo
	}
	zap.L().Info("图书详情缓存已开启", zap.Duration("ttl", cfg.Cache.TTL))
	return redis.NewCachedRepository(repo, client, cfg.Cache.TTL)
}

// provideRateLimiter 按客户端IP限流，rps为0时返回nil（不限流）
func provideRateLimiter(cfg *config.Config) (*middleware.RateLimiter, func()) {
	rl := cfg.Server.RateLimit
	if rl.RPS <= 0 {
		return nil, func() {}
	}
	limiter := middleware.NewRateLimiter(rl.RPS, rl.Burst)
	return limiter, limiter.Close
}
