// Package domain 定义业务实体和仓储接口
package domain

import (
	"context"

	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// User 用户业务实体
type User struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	Salt      string     `json:"-"`
	Token     string     `json:"-"`
	History   string     `json:"-"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据 UID 获取用户，不存在时返回 gorm.ErrRecordNotFound
	GetByUID(ctx context.Context, uid int64) (*User, error)
	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create 创建用户，返回新用户 UID
	Create(ctx context.Context, user *User) (int64, error)
	// UpdateHistory 覆盖写入用户的历史记录列，返回受影响行数
	UpdateHistory(ctx context.Context, uid int64, history string) (int64, error)
	// UpdateToken 更新用户登录 Token
	UpdateToken(ctx context.Context, uid int64, token string) error
}
