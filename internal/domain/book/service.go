package book

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/book"

// Service 图书领域服务接口
// 设计说明：
// 1. 目前只是转发到Repository，没有额外业务规则
// 2. 保留这一层是为了以后加业务规则时不用改Handler和Repository
// 3. 每个方法记录一个Span和一次操作计数
type Service interface {
	// CreateBook 创建图书
	CreateBook(ctx context.Context, attrs Attributes) (*Book, error)

	// UpdateBook 部分更新图书，返回数据库中的最新状态
	UpdateBook(ctx context.Context, existing *Book, changes Changes) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, existing *Book) error

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ISBNTaken ISBN是否已被其他图书占用
	ISBNTaken(ctx context.Context, isbn string, exceptID uint) (bool, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, attrs Attributes) (b *Book, err error) {
	ctx, done := s.observe(ctx, "create")
	defer func() { done(err) }()

	return s.repo.Create(ctx, attrs)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, existing *Book, changes Changes) (b *Book, err error) {
	ctx, done := s.observe(ctx, "update", attribute.Int64("book.id", int64(existing.ID)))
	defer func() { done(err) }()

	return s.repo.Update(ctx, existing, changes)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, existing *Book) (err error) {
	ctx, done := s.observe(ctx, "delete", attribute.Int64("book.id", int64(existing.ID)))
	defer func() { done(err) }()

	return s.repo.Delete(ctx, existing)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (b *Book, err error) {
	ctx, done := s.observe(ctx, "get", attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	return s.repo.FindByID(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) (books []*Book, total int64, err error) {
	ctx, done := s.observe(ctx, "list", attribute.Int("page", params.Page))
	defer func() { done(err) }()

	return s.repo.List(ctx, params)
}

// ISBNTaken ISBN是否已被占用
func (s *service) ISBNTaken(ctx context.Context, isbn string, exceptID uint) (taken bool, err error) {
	ctx, done := s.observe(ctx, "isbn_check")
	defer func() { done(err) }()

	return s.repo.ISBNExists(ctx, isbn, exceptID)
}

// observe 开启Span，返回结束回调
// 回调根据错误类型记录结果：success / not_found / failure
func (s *service) observe(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.Service/"+operation)
	span.SetAttributes(attrs...)

	return ctx, func(err error) {
		result := "success"
		switch {
		case err == nil:
		case errors.Is(err, ErrBookNotFound):
			result = "not_found"
		default:
			result = "failure"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.RecordBookOperation(operation, result)
		span.End()
	}
}
