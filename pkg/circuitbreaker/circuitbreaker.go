// Package circuitbreaker 熔断器
//
// 用在"失败了可以跳过"的依赖前面（如Redis缓存）：
// 下游连续失败达到阈值后直接返回ErrOpenState，不再等待超时；
// 冷却时间过后放少量请求探测，成功则恢复。
//
// 状态转换：
//
//	CLOSED --连续失败>=FailureThreshold--> OPEN
//	OPEN   --经过OpenTimeout-------------> HALF_OPEN
//	HALF_OPEN --探测成功--> CLOSED
//	HALF_OPEN --探测失败--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行
	StateOpen                  // 熔断，快速失败
	StateHalfOpen              // 探测中
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开，请求没有执行
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置，零值字段使用默认值
type Config struct {
	FailureThreshold uint32        // 连续失败多少次后熔断，默认5
	OpenTimeout      time.Duration // OPEN状态持续多久后开始探测，默认30s
	HalfOpenRequests uint32        // 半开状态最多同时放行的探测请求数，默认1

	// OnStateChange 状态变化回调（记录日志、告警），在锁内调用，不要阻塞
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker 基于连续失败次数的熔断器，可并发使用
type CircuitBreaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu                  sync.Mutex
	state               State
	consecutiveFailures uint32
	halfOpenInFlight    uint32
	openedAt            time.Time
}

// New 创建熔断器
//
//	cb := circuitbreaker.New("book_cache", circuitbreaker.Config{
//	    FailureThreshold: 5,
//	    OpenTimeout:      30 * time.Second,
//	})
func New(name string, cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}
	return &CircuitBreaker{name: name, cfg: cfg, now: time.Now}
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn，直接返回ErrOpenState；否则返回fn的结果
//
//	err := cb.Execute(func() error {
//	    return client.Get(ctx, key).Err()
//	})
//
// 注意：fn返回的"正常的业务结果"（如redis.Nil）不要当作失败返回，
// 否则缓存未命中也会触发熔断
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.acquire(); err != nil {
		return err
	}

	err := fn()
	cb.release(err == nil)
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refresh()
	return cb.state
}

func (cb *CircuitBreaker) acquire() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refresh()
	switch cb.state {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		if cb.halfOpenInFlight >= cb.cfg.HalfOpenRequests {
			return ErrOpenState
		}
		cb.halfOpenInFlight++
	}
	return nil
}

func (cb *CircuitBreaker) release(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.halfOpenInFlight--
		if success {
			cb.transition(StateClosed)
		} else {
			cb.transition(StateOpen)
		}
	case StateClosed:
		if success {
			cb.consecutiveFailures = 0
			return
		}
		cb.consecutiveFailures++
		if cb.consecutiveFailures >= cb.cfg.FailureThreshold {
			cb.transition(StateOpen)
		}
	}
	// OPEN：请求是在熔断前放行的，结果不再影响状态
}

// refresh OPEN超时后转为HALF_OPEN，调用方需持有锁
func (cb *CircuitBreaker) refresh() {
	if cb.state == StateOpen && !cb.now().Before(cb.openedAt.Add(cb.cfg.OpenTimeout)) {
		cb.transition(StateHalfOpen)
	}
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}

	cb.state = to
	cb.consecutiveFailures = 0
	cb.halfOpenInFlight = 0
	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.name, from, to)
	}
}
