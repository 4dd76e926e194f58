package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// RequestIDKey gin.Context中请求ID的key（由middleware写入）
const RequestIDKey = "request_id"

// Resource 单个资源响应
// 设计说明：
// 1. 使用真实的HTTP状态码（200/201），客户端不需要再解析业务错误码
// 2. 资源统一包在data字段里：{"data": {...}}
type Resource struct {
	Data interface{} `json:"data"`
}

// ErrorBody 错误响应
type ErrorBody struct {
	Message string `json:"message" example:"No query results for model [Book]."`
}

// ValidationBody 字段校验失败响应（422）
type ValidationBody struct {
	Message string      `json:"message" example:"The title field is required."`
	Errors  interface{} `json:"errors" swaggertype:"object"`
}

// OK 200 单个资源
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Resource{Data: data})
}

// Created 201 新建的资源
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Resource{Data: data})
}

// JSON 原样输出（分页列表等已经自带外层结构的响应）
func JSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// NoContent 204 空响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ValidationFailed 422 字段校验失败
func ValidationFailed(c *gin.Context, message string, errors interface{}) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationBody{
		Message: message,
		Errors:  errors,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	b, err := h.bookService.GetBook(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 5xx错误只返回通用提示，详细错误记录到日志
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		// 记录详细错误到日志（包含内部错误）
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
		message = apperrors.ErrInternal.Message
	}

	c.AbortWithStatusJSON(status, ErrorBody{Message: message})
}
