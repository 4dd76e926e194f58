package book

import (
	"context"
	"math"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 便于Mock测试，不依赖具体数据库实现
// 3. Create/Update返回的实体都是存储层的真实状态
type Repository interface {
	// Create 创建图书，返回带ID和时间戳的实体
	Create(ctx context.Context, attrs Attributes) (*Book, error)

	// Update 修改已存在的图书
	// 返回值必须从数据库回读，不能只修改内存中的对象
	Update(ctx context.Context, existing *Book, changes Changes) (*Book, error)

	// Delete 物理删除图书
	Delete(ctx context.Context, existing *Book) error

	// FindByID 根据ID查找图书，不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// List 分页查询，按创建时间倒序
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ISBNExists ISBN是否已被占用
	// exceptID不为0时排除该ID的图书（更新时排除自身）
	ISBNExists(ctx context.Context, isbn string, exceptID uint) (bool, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int // 页码（从1开始）
	PageSize int // 每页数量
}

// Offset 分页偏移量
// 乘积溢出时返回math.MaxInt（查询结果为空），不会绕回到负数
func (p ListParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}
