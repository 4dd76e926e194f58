package book

import (
	"time"

	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// 字段约束
const (
	MaxTitleLength   = 255
	MaxAuthorLength  = 255
	MaxISBNLength    = 20
	MinPublishedYear = 1500
)

// Book 图书实体
// 设计说明：
// 1. ID由数据库分配（自增），创建后不可修改，不会复用
// 2. ISBN全局唯一（数据库唯一索引保证）
// 3. Description可以为NULL，用指针表示
type Book struct {
	ID            uint
	Title         string  // 书名
	Author        string  // 作者
	PublishedYear int     // 出版年份
	ISBN          string  // ISBN号
	Description   *string // 图书描述（可选）
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Attributes 创建图书时可写入的字段
// 显式列出所有可写字段，没有"按key赋值"的通用机制
type Attributes struct {
	Title         string
	Author        string
	PublishedYear int
	ISBN          string
	Description   *string
}

// Changes 部分更新
// 只有Set=true的字段会被修改，其余字段保持原值
type Changes struct {
	Title         optional.Optional[string]
	Author        optional.Optional[string]
	PublishedYear optional.Optional[int]
	ISBN          optional.Optional[string]
	Description   optional.Optional[string]
}

// IsEmpty 没有任何字段需要修改
func (c Changes) IsEmpty() bool {
	return !c.Title.Set && !c.Author.Set && !c.PublishedYear.Set && !c.ISBN.Set && !c.Description.Set
}

// Apply 把修改应用到实体副本上，原实体不变
// 仓储实现以数据库回读结果为准，这里主要用于测试和缓存场景
func (c Changes) Apply(b Book) Book {
	if c.Title.Valid {
		b.Title = c.Title.Value
	}
	if c.Author.Valid {
		b.Author = c.Author.Value
	}
	if c.PublishedYear.Valid {
		b.PublishedYear = c.PublishedYear.Value
	}
	if c.ISBN.Valid {
		b.ISBN = c.ISBN.Value
	}
	if c.Description.Set {
		b.Description = c.Description.Ptr()
	}
	return b
}

// CurrentYear 出版年份上限（当前自然年）
func CurrentYear() int {
	return time.Now().Year()
}
