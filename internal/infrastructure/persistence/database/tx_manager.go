package database

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的key
// 使用私有类型，避免与其他包的key冲突
type txKey struct{}

// TxManager 事务管理器
// 教学要点：
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB（避免全局变量）
// 3. 支持嵌套事务（ctx中已有事务时，GORM使用Savepoint）
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 教学要点：
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK，返回nil时自动COMMIT
// 3. 通过context.WithValue传递事务DB
//
// 使用示例：
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    db := getDB(ctx, r.db)
//	    if err := db.Model(&BookModel{ID: id}).Updates(columns).Error; err != nil {
//	        return err // 自动回滚
//	    }
//	    return db.First(&model, id).Error // nil则提交，非nil则回滚
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return getDB(ctx, m.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		// Repository通过getDB从context提取事务DB
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// getDB 从context获取事务DB，如果没有则使用默认DB
// 教学要点：事务传递机制
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
