package dto

import (
	"fmt"
	"reflect"
	"time"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/validation"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// TimestampLayout 时间戳输出格式（UTC，微秒）
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// =========================================
// 请求DTO
// =========================================

// StoreBookRequest HTTP创建图书请求
// validator tag说明：
// - required: 必填字段（空字符串、0也算缺失）
// - max: 字符串长度上限
// - gte + not_future_year: 出版年份在[1500, 今年]之间（not_future_year在validation包中注册）
type StoreBookRequest struct {
	Title         string  `json:"title" binding:"required,max=255" example:"Clean Code"`
	Author        string  `json:"author" binding:"required,max=255" example:"Robert C. Martin"`
	PublishedYear int     `json:"published_year" binding:"required,gte=1500,not_future_year" example:"2008"`
	ISBN          string  `json:"isbn" binding:"required,max=20" example:"9780132350884"`
	Description   *string `json:"description" example:"A Handbook of Agile Software Craftsmanship"`
}

// DecodeStoreBook 解析创建请求并执行字段规则校验
// 返回的error只表示请求体无法解析；字段错误放在bag里
func DecodeStoreBook(body []byte) (*StoreBookRequest, *validation.Errors, error) {
	fields, err := validation.DecodeObject(body)
	if err != nil {
		return nil, nil, err
	}

	var req StoreBookRequest
	bag := validation.NewErrors()
	validation.DecodeFields(fields, &req, bag)
	if err := validation.Struct(&req, bag); err != nil {
		return nil, nil, err
	}
	return &req, bag, nil
}

// Attributes 转换为领域层的创建参数
// 空的description按null保存
func (r *StoreBookRequest) Attributes() book.Attributes {
	description := r.Description
	if description != nil && *description == "" {
		description = nil
	}
	return book.Attributes{
		Title:         r.Title,
		Author:        r.Author,
		PublishedYear: r.PublishedYear,
		ISBN:          r.ISBN,
		Description:   description,
	}
}

// UpdateBookRequest HTTP更新图书请求（PUT/PATCH）
// 设计说明：
// 1. 每个字段都是Optional，区分"没传"、"传了null"、"传了值"
// 2. 没传的字段不校验也不修改
// 3. 除description外，传null是错误
type UpdateBookRequest struct {
	Title         optional.Optional[string] `json:"title" swaggertype:"string" example:"Clean Code"`
	Author        optional.Optional[string] `json:"author" swaggertype:"string" example:"Robert C. Martin"`
	PublishedYear optional.Optional[int]    `json:"published_year" swaggertype:"integer" example:"2008"`
	ISBN          optional.Optional[string] `json:"isbn" swaggertype:"string" example:"9780132350884"`
	Description   optional.Optional[string] `json:"description" swaggertype:"string" example:"Second printing"`
}

// DecodeUpdateBook 解析更新请求并校验已提供的字段
func DecodeUpdateBook(body []byte) (*UpdateBookRequest, *validation.Errors, error) {
	fields, err := validation.DecodeObject(body)
	if err != nil {
		return nil, nil, err
	}

	var req UpdateBookRequest
	bag := validation.NewErrors()
	validation.DecodeFields(fields, &req, bag)
	if err := req.validate(bag); err != nil {
		return nil, nil, err
	}
	return &req, bag, nil
}

// validate 与创建请求相同的规则，只作用于已提供的字段
func (r *UpdateBookRequest) validate(bag *validation.Errors) error {
	if err := checkString(bag, "title", r.Title, "required,max=255"); err != nil {
		return err
	}
	if err := checkString(bag, "author", r.Author, "required,max=255"); err != nil {
		return err
	}
	if err := checkString(bag, "isbn", r.ISBN, "required,max=20"); err != nil {
		return err
	}

	if r.PublishedYear.Set && !bag.Has("published_year") {
		if !r.PublishedYear.Valid {
			bag.Add("published_year", validation.TypeMessage("published_year", reflect.Int))
		} else if err := validation.Var("published_year", r.PublishedYear.Value, "gte=1500,not_future_year", bag); err != nil {
			return err
		}
	}

	// description可以为null，没有其他规则
	return nil
}

func checkString(bag *validation.Errors, field string, v optional.Optional[string], rule string) error {
	if !v.Set || bag.Has(field) {
		return nil
	}
	if !v.Valid {
		bag.Add(field, validation.TypeMessage(field, reflect.String))
		return nil
	}
	return validation.Var(field, v.Value, rule, bag)
}

// Changes 转换为领域层的部分更新
// description传空字符串等同于null（清空）
func (r *UpdateBookRequest) Changes() book.Changes {
	description := r.Description
	if description.Valid && description.Value == "" {
		description = optional.Null[string]()
	}
	return book.Changes{
		Title:         r.Title,
		Author:        r.Author,
		PublishedYear: r.PublishedYear,
		ISBN:          r.ISBN,
		Description:   description,
	}
}

// =========================================
// 响应DTO
// =========================================

// BookResource 图书的对外JSON表示
// description为null时不输出；时间戳为零值时输出null
type BookResource struct {
	ID            uint    `json:"id" example:"1"`
	Title         string  `json:"title" example:"Clean Code"`
	Author        string  `json:"author" example:"Robert C. Martin"`
	PublishedYear int     `json:"published_year" example:"2008"`
	ISBN          string  `json:"isbn" example:"9780132350884"`
	Description   *string `json:"description,omitempty" example:"A Handbook of Agile Software Craftsmanship"`
	CreatedAt     *string `json:"created_at" example:"2024-01-15T10:30:00.000000Z"`
	UpdatedAt     *string `json:"updated_at" example:"2024-01-15T10:30:00.000000Z"`
}

// NewBookResource 领域实体 → 对外表示
func NewBookResource(b *book.Book) BookResource {
	return BookResource{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
		ISBN:          b.ISBN,
		Description:   b.Description,
		CreatedAt:     FormatTimestamp(b.CreatedAt),
		UpdatedAt:     FormatTimestamp(b.UpdatedAt),
	}
}

// FormatTimestamp 格式化为ISO-8601(UTC)，零值返回nil
func FormatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// BookCollection 分页图书列表
type BookCollection struct {
	Data  []BookResource `json:"data"`
	Links PageLinks      `json:"links"`
	Meta  PageMeta       `json:"meta"`
}

// PageLinks 翻页链接，没有上一页/下一页时为null
type PageLinks struct {
	First string  `json:"first" example:"http://localhost:8080/books?page=1"`
	Last  string  `json:"last" example:"http://localhost:8080/books?page=3"`
	Prev  *string `json:"prev" example:"null"`
	Next  *string `json:"next" example:"http://localhost:8080/books?page=2"`
}

// PageMeta 分页信息，当前页为空时from/to为null
type PageMeta struct {
	CurrentPage int    `json:"current_page" example:"1"`
	From        *int   `json:"from" example:"1"`
	LastPage    int    `json:"last_page" example:"3"`
	Path        string `json:"path" example:"http://localhost:8080/books"`
	PerPage     int    `json:"per_page" example:"10"`
	To          *int   `json:"to" example:"10"`
	Total       int64  `json:"total" example:"23"`
}

// NewBookCollection 构建分页列表
// path是不带查询参数的列表地址
func NewBookCollection(books []*book.Book, p appbook.Paginator, path string) BookCollection {
	data := make([]BookResource, len(books))
	for i, b := range books {
		data[i] = NewBookResource(b)
	}

	pageURL := func(page int) string {
		return fmt.Sprintf("%s?page=%d", path, page)
	}

	links := PageLinks{
		First: pageURL(1),
		Last:  pageURL(p.LastPage),
	}
	if p.HasPrev() {
		prev := pageURL(p.CurrentPage - 1)
		links.Prev = &prev
	}
	if p.HasNext() {
		next := pageURL(p.CurrentPage + 1)
		links.Next = &next
	}

	meta := PageMeta{
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		Path:        path,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
	if p.From > 0 {
		from, to := p.From, p.To
		meta.From = &from
		meta.To = &to
	}

	return BookCollection{Data: data, Links: links, Meta: meta}
}
