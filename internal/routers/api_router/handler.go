// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"errors"

	"github.com/haierkeys/collab-note-service/internal/app"
	pkgapp "github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// toErrResponse 将业务错误转换为统一响应
// service 层返回的错误码对象直接回传，其它错误包装为服务器内部错误
func toErrResponse(response *pkgapp.Response, err error) {
	var c *code.Code
	if errors.As(err, &c) {
		response.ToResponse(c)
		return
	}
	response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}
