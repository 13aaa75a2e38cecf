package api_router

import (
	"github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/internal/dto"
	pkgapp "github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryHandler 浏览历史 API 路由处理器
type HistoryHandler struct {
	*Handler
}

// NewHistoryHandler 创建 HistoryHandler 实例
func NewHistoryHandler(a *app.App) *HistoryHandler {
	return &HistoryHandler{Handler: NewHandler(a)}
}

// HistorySetPinnedRequestParams 设置置顶状态请求参数
type HistorySetPinnedRequestParams struct {
	Pinned *bool `form:"pinned" json:"pinned" binding:"required"`
}

// List 获取当前用户的全部浏览历史
func (h *HistoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	history, err := h.App.HistoryService().Get(c.Request.Context(), uid)
	if err != nil {
		h.App.Logger().Error("HistoryHandler.List err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.HistoryListResponse{History: history}))
}

// Replace 用客户端提交的数组全量覆盖浏览历史
func (h *HistoryHandler) Replace(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryReplaceRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.Replace.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.HistoryService().ReplaceAll(c.Request.Context(), uid, params.History); err != nil {
		h.App.Logger().Error("HistoryHandler.Replace err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// SetPinned 设置单条浏览历史的置顶状态
func (h *HistoryHandler) SetPinned(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &HistorySetPinnedRequestParams{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.SetPinned.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	noteID := c.Param("noteId")
	if err := h.App.HistoryService().SetPinned(c.Request.Context(), uid, noteID, *params.Pinned); err != nil {
		h.App.Logger().Error("HistoryHandler.SetPinned err",
			zap.Int64("uid", uid), zap.String("noteId", noteID), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// Delete 删除单条浏览历史
func (h *HistoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	noteID := c.Param("noteId")
	if err := h.App.HistoryService().Delete(c.Request.Context(), uid, noteID); err != nil {
		h.App.Logger().Error("HistoryHandler.Delete err",
			zap.Int64("uid", uid), zap.String("noteId", noteID), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// DeleteAll 清空当前用户的全部浏览历史
func (h *HistoryHandler) DeleteAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.HistoryService().DeleteAll(c.Request.Context(), uid); err != nil {
		h.App.Logger().Error("HistoryHandler.DeleteAll err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}
