package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位就是HTTP状态码（40401 → 404）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 说明：Wrap出来的错误与预定义错误码相同时，errors.Is也能识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 错误码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if http.StatusText(status) == "" {
		return http.StatusInternalServerError
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return WrapCode(err, ErrCodeInternal, message)
}

// WrapCode 使用指定错误码包装系统错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码 = HTTP状态码 * 100 + 序号
// - 4xxxx: 客户端错误（参数错误、资源不存在）
// - 5xxxx: 服务端错误（数据库异常、缓存异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeConflict      = 50002 // 存储层唯一约束冲突（并发写入）
	ErrCodeCacheError    = 50003 // 缓存错误

	// 请求错误
	ErrCodeBadRequest       = 40000 // 请求体无法解析
	ErrCodeNotFound         = 40400 // 资源不存在（通用）
	ErrCodeBookNotFound     = 40401 // 图书不存在
	ErrCodeMethodNotAllowed = 40500 // 请求方法不支持
	ErrCodeValidation       = 42200 // 字段校验失败
	ErrCodeTooManyRequests  = 42900 // 请求过于频繁
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Server Error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database Error")
	ErrCacheError    = New(ErrCodeCacheError, "Cache Error")

	ErrBadRequest       = New(ErrCodeBadRequest, "The request body is not valid JSON.")
	ErrNotFound         = New(ErrCodeNotFound, "Not Found")
	ErrMethodNotAllowed = New(ErrCodeMethodNotAllowed, "Method Not Allowed")
	ErrValidation       = New(ErrCodeValidation, "The given data was invalid.")
	ErrTooManyRequests  = New(ErrCodeTooManyRequests, "Too Many Attempts.")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
