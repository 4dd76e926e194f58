package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
)

// HealthHandler 健康检查
// 不依赖数据库，只证明进程在响应请求
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// PongResponse 健康检查响应
type PongResponse struct {
	Pong string `json:"pong" example:"2024-01-15T10:30:00.000000Z"`
}

// Ping 健康检查
// @Summary      健康检查
// @Description  返回服务器当前时间
// @Tags         系统
// @Produce      json
// @Success      200 {object} handler.PongResponse
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PongResponse{
		Pong: h.now().UTC().Format(dto.TimestampLayout),
	})
}
