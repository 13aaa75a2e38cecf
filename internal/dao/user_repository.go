package dao

import (
	"context"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/model"
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Salt:      m.Salt,
		Token:     m.Token,
		History:   m.History,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	return &model.User{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		Salt:      user.Salt,
		Token:     user.Token,
		History:   user.History,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetByUID 根据 UID 获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.DB().WithContext(ctx).
		Where("uid = ? AND is_deleted = 0", uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB().WithContext(ctx).
		Where("email = ? AND is_deleted = 0", email).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户，返回新用户 UID
func (r *userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.UID, nil
}

// UpdateHistory 覆盖写入用户的历史记录列
func (r *userRepository) UpdateHistory(ctx context.Context, uid int64, history string) (int64, error) {
	result := r.dao.DB().WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ? AND is_deleted = 0", uid).
		Updates(map[string]interface{}{
			"history":    history,
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateToken 更新用户登录 Token
func (r *userRepository) UpdateToken(ctx context.Context, uid int64, token string) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"token":      token,
			"updated_at": timex.Now(),
		}).Error
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
