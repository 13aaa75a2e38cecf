package dto

import (
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required,min=2,max=50"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=50"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Token     string     `json:"token,omitempty"`
	CreatedAt timex.Time `json:"createdAt"`
}
