package api_router

import (
	"github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/internal/dto"
	pkgapp "github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserRegisterRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	user, err := h.App.UserService().Register(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.App.Logger().Error("UserHandler.Register err", zap.String("email", params.Email), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	user, err := h.App.UserService().Login(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.App.Logger().Error("UserHandler.Login err", zap.String("email", params.Email), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// UserInfo 获取当前用户信息
func (h *UserHandler) UserInfo(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	user, err := h.App.UserService().Get(c.Request.Context(), uid)
	if err != nil {
		h.App.Logger().Error("UserHandler.UserInfo err", zap.Int64("uid", uid), zap.Error(err))
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}
