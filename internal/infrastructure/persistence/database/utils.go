package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突错误
// 各数据库的表现：
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed: books.isbn
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断（需要开启TranslateError）
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查：未翻译的驱动错误
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
