package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现（GORM）
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如ISBN重复），转换为业务错误
// 4. 写操作之后都从数据库回读，返回存储层的真实状态
type bookRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, tx *TxManager) book.Repository {
	return &bookRepository{db: db, tx: tx}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	// 1. 领域属性 → GORM模型
	model := &BookModel{
		Title:         attrs.Title,
		Author:        attrs.Author,
		PublishedYear: attrs.PublishedYear,
		ISBN:          attrs.ISBN,
		Description:   attrs.Description,
	}

	db := getDB(ctx, r.db)

	// 2. 插入数据库
	if err := db.Create(model).Error; err != nil {
		// 校验之后仍然冲突，说明有并发写入
		if isDuplicateError(err) {
			return nil, apperrors.WrapCode(err, apperrors.ErrCodeConflict, book.ErrISBNConflict.Message)
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建图书失败")
	}

	// 3. 回读，拿到数据库实际保存的时间戳
	return r.reload(db, model.ID)
}

// Update 部分更新图书
// 教学要点：
// 1. 只UPDATE请求中出现的列，updated_at由GORM自动维护
// 2. UPDATE与回读在同一个事务里，返回的是提交时的状态
// 3. 没有任何修改时不执行UPDATE，但仍然回读
func (r *bookRepository) Update(ctx context.Context, existing *book.Book, changes book.Changes) (*book.Book, error) {
	var updated *book.Book

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		if columns := toUpdateColumns(changes); len(columns) > 0 {
			result := db.Model(&BookModel{ID: existing.ID}).Updates(columns)
			if result.Error != nil {
				if isDuplicateError(result.Error) {
					return apperrors.WrapCode(result.Error, apperrors.ErrCodeConflict, book.ErrISBNConflict.Message)
				}
				return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "更新图书失败")
			}
		}

		b, err := r.reload(db, existing.ID)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete 删除图书（物理删除）
func (r *bookRepository) Delete(ctx context.Context, existing *book.Book) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, existing.ID)

	if result.Error != nil {
		return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "删除图书失败")
	}

	// 查询和删除之间被别的请求删掉了
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.reload(getDB(ctx, r.db), id)
}

// List 分页查询图书列表
// 排序：created_at倒序，同一时刻创建的按id倒序，保证翻页稳定
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	db := getDB(ctx, r.db)

	// 查询总数
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书总数失败")
	}

	// 排序 + 分页
	err := db.
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// ISBNExists ISBN是否已被占用
// exceptID不为0时排除该图书自身
func (r *bookRepository) ISBNExists(ctx context.Context, isbn string, exceptID uint) (bool, error) {
	var count int64

	query := getDB(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询ISBN失败")
	}

	return count > 0, nil
}

// reload 按主键读取一行
func (r *bookRepository) reload(db *gorm.DB, id uint) (*book.Book, error) {
	var model BookModel
	err := db.First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		PublishedYear: model.PublishedYear,
		ISBN:          model.ISBN,
		Description:   model.Description,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// toUpdateColumns 部分更新 → UPDATE的列
// 使用map而不是结构体：结构体的零值字段会被GORM忽略，无法把description改成NULL
func toUpdateColumns(c book.Changes) map[string]interface{} {
	columns := make(map[string]interface{})
	if c.Title.Valid {
		columns["title"] = c.Title.Value
	}
	if c.Author.Valid {
		columns["author"] = c.Author.Value
	}
	if c.PublishedYear.Valid {
		columns["published_year"] = c.PublishedYear.Value
	}
	if c.ISBN.Valid {
		columns["isbn"] = c.ISBN.Value
	}
	if c.Description.Set {
		columns["description"] = c.Description.Ptr()
	}
	return columns
}
