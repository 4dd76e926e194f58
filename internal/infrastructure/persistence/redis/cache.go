package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// cachedRepository 带缓存的图书仓储（装饰器）
// 设计说明：
// 1. Cache-Aside：FindByID先查Redis，未命中再查数据库并回填
// 2. Update/Delete写数据库之后把缓存换成短期占位值（tombstone），
//    回填使用SET NX，写之前开始的读不会把旧数据写回缓存；占位过期后正常回填
// 3. Redis故障不影响业务，只记日志，直接查数据库
// 4. Redis连续失败后熔断，熔断期间跳过缓存，不再等待Redis超时
// 5. 只缓存单本图书详情，列表变化太频繁不缓存
//
// Key设计：book:detail:{id}
type cachedRepository struct {
	book.Repository // 未覆盖的方法直接使用底层仓储

	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	log     *zap.Logger
}

const (
	// tombstone 写操作后留下的占位值，读到它按未命中处理
	tombstone = "-"
	// TombstoneTTL 占位值的有效期，应大于一次数据库读取加回填的耗时
	TombstoneTTL = 5 * time.Second
)

// NewCachedRepository 用Redis缓存包装图书仓储
func NewCachedRepository(inner book.Repository, client *redis.Client, ttl time.Duration) book.Repository {
	log := zap.L().Named("book_cache")
	return &cachedRepository{
		Repository: inner,
		client:     client,
		ttl:        ttl,
		breaker: circuitbreaker.New("book_cache", circuitbreaker.Config{
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("缓存熔断器状态变化",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
		log: log,
	}
}

// FindByID 先查缓存
func (r *cachedRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	key := detailKey(id)

	var (
		data []byte
		miss bool
	)
	err := r.breaker.Execute(func() error {
		var err error
		data, err = r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// 未命中是正常结果，不计入熔断
			miss = true
			return nil
		}
		return err
	})
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordCacheResult("bypass")
	case err != nil:
		r.log.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheResult("error")
	case miss, string(data) == tombstone:
		metrics.RecordCacheResult("miss")
	default:
		var b book.Book
		if err := json.Unmarshal(data, &b); err == nil {
			metrics.RecordCacheResult("hit")
			return &b, nil
		}
		// 数据损坏，当作未命中
		r.log.Warn("缓存数据无法解析", zap.String("key", key))
		metrics.RecordCacheResult("error")
	}

	b, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		// 不存在的图书不缓存
		return nil, err
	}

	r.set(ctx, key, b)
	return b, nil
}

// Update 写数据库后让缓存失效
func (r *cachedRepository) Update(ctx context.Context, existing *book.Book, changes book.Changes) (*book.Book, error) {
	updated, err := r.Repository.Update(ctx, existing, changes)
	r.invalidate(ctx, existing.ID)
	return updated, err
}

// Delete 删除数据库记录后让缓存失效
func (r *cachedRepository) Delete(ctx context.Context, existing *book.Book) error {
	err := r.Repository.Delete(ctx, existing)
	r.invalidate(ctx, existing.ID)
	return err
}

func (r *cachedRepository) set(ctx context.Context, key string, b *book.Book) {
	data, err := json.Marshal(b)
	if err != nil {
		r.log.Warn("序列化图书失败", zap.String("key", key), zap.Error(err))
		return
	}
	// NX：占位值还在时不回填
	err = r.breaker.Execute(func() error {
		return r.client.SetNX(ctx, key, data, r.ttl).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		r.log.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// invalidate 用占位值覆盖缓存
// 不经过熔断器：熔断期间也要尽量失效，避免Redis恢复后读到旧数据
func (r *cachedRepository) invalidate(ctx context.Context, id uint) {
	if err := r.client.Set(ctx, detailKey(id), tombstone, TombstoneTTL).Err(); err != nil {
		r.log.Warn("缓存失效失败", zap.Uint("id", id), zap.Error(err))
	}
}

func detailKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}
