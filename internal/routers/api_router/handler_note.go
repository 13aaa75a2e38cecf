package api_router

import (
	"github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/internal/dto"
	pkgapp "github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/convert"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// Get 获取单条笔记
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService().Get(c.Request.Context(), uid, c.Param("noteId"))
	if err != nil {
		h.App.Logger().Error("NoteHandler.Get err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// CreateOrUpdate 创建或更新笔记
func (h *NoteHandler) CreateOrUpdate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.CreateOrUpdate.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService().Save(c.Request.Context(), uid, params)
	if err != nil {
		h.App.Logger().Error("NoteHandler.CreateOrUpdate err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	noteID := c.Param("noteId")
	if err := h.App.NoteService().Delete(c.Request.Context(), uid, noteID); err != nil {
		h.App.Logger().Error("NoteHandler.Delete err",
			zap.Int64("uid", uid), zap.String("noteId", noteID), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// Revisions 列出笔记的修订版本
func (h *NoteHandler) Revisions(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	limit := convert.StrTo(c.DefaultQuery("limit", "50")).MustInt()
	revisions, err := h.App.NoteService().ListRevisions(c.Request.Context(), uid, c.Param("noteId"), limit)
	if err != nil {
		h.App.Logger().Error("NoteHandler.Revisions err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(revisions))
}
