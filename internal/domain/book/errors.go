package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "No query results for model [Book].")

	// ErrISBNConflict 写入时触发了ISBN唯一索引
	// 校验层已经检查过唯一性，出现这个错误说明有并发写入，按存储层错误处理
	ErrISBNConflict = apperrors.New(apperrors.ErrCodeConflict, "ISBN unique constraint violated")
)
