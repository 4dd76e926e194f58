package book

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// PageSize 列表每页数量（固定，客户端不能修改）
const PageSize = 10

// MaxPage 偏移量不溢出的最大页码
// 更大的页码一定超出最后一页，直接返回空列表
const MaxPage = math.MaxInt/PageSize + 1

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 只支持翻页，不支持搜索和排序
// 2. 固定按创建时间倒序，每页10条
// 3. 计算分页信息（总页数、当前页的起止序号）
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page int // 页码（从1开始）
}

// Paginator 分页信息
// From/To是当前页第一条和最后一条的序号（从1开始），当前页为空时都是0
type Paginator struct {
	CurrentPage int
	PerPage     int
	Total       int64
	LastPage    int
	From        int
	To          int
}

// HasPrev 是否有上一页
func (p Paginator) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext 是否有下一页
func (p Paginator) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books     []*book.Book
	Paginator Paginator
}

// Execute 执行列表查询用例
// 学习要点：
// 1. 页码小于1按第1页处理
// 2. 超出最后一页返回空列表，不是错误
// 3. 页码大于MaxPage时只查总数（偏移量会溢出）
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值
	if req.Page < 1 {
		req.Page = 1
	}

	// 2. 调用领域服务查询
	params := book.ListParams{Page: req.Page, PageSize: PageSize}
	if req.Page > MaxPage {
		params.Page = 1
	}
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}
	if req.Page > MaxPage {
		books = []*book.Book{}
	}

	return &ListBooksResponse{
		Books:     books,
		Paginator: NewPaginator(req.Page, PageSize, total, len(books)),
	}, nil
}

// NewPaginator 计算分页信息
// count是当前页实际返回的条数
func NewPaginator(page, perPage int, total int64, count int) Paginator {
	// 总页数，至少为1
	lastPage := int(total) / perPage
	if int(total)%perPage != 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	p := Paginator{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
	if count > 0 {
		p.From = (page-1)*perPage + 1
		p.To = p.From + count - 1
	}
	return p
}

// ParsePage 解析查询参数中的页码
// 缺失、不是整数、小于1时都返回1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
