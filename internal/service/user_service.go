package service

import (
	"context"
	"errors"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/dto"
	"github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 注册新用户并签发 Token
	Register(ctx context.Context, params *dto.UserRegisterRequest, ip string) (*dto.UserResponse, error)

	// Login 邮箱密码登录并签发 Token
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserResponse, error)

	// Get 获取用户信息
	Get(ctx context.Context, uid int64) (*dto.UserResponse, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo         domain.UserRepository
	tokenManager     app.TokenManager
	registerIsEnable bool
	logger           *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, registerIsEnable bool, logger *zap.Logger) UserService {
	return &userService{
		userRepo:         userRepo,
		tokenManager:     tokenManager,
		registerIsEnable: registerIsEnable,
		logger:           logger,
	}
}

// Register 注册新用户并签发 Token
func (s *userService) Register(ctx context.Context, params *dto.UserRegisterRequest, ip string) (*dto.UserResponse, error) {
	if !s.registerIsEnable {
		return nil, code.ErrorUserRegisterClosed
	}

	if _, err := s.userRepo.GetByEmail(ctx, params.Email); err == nil {
		return nil, code.ErrorUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	salt := util.GetRandomString(16)
	hashed, err := util.GeneratePasswordHash(params.Password + salt)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	uid, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Username: params.Username,
		Password: hashed,
		Salt:     salt,
		History:  "[]",
	})
	if err != nil {
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	return s.issueToken(ctx, uid, params.Username, params.Email, ip)
}

// Login 邮箱密码登录并签发 Token
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(user.Password, params.Password+user.Salt) {
		return nil, code.ErrorUserPasswordError
	}

	return s.issueToken(ctx, user.UID, user.Username, user.Email, ip)
}

// Get 获取用户信息
func (s *userService) Get(ctx context.Context, uid int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}
	return &dto.UserResponse{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

// issueToken 签发并持久化用户 Token
func (s *userService) issueToken(ctx context.Context, uid int64, username, email, ip string) (*dto.UserResponse, error) {
	token, err := s.tokenManager.Generate(uid, username, ip)
	if err != nil {
		s.logger.Error("generate token failed", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorCreateTokenFail
	}

	if err := s.userRepo.UpdateToken(ctx, uid, token); err != nil {
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	return &dto.UserResponse{
		UID:       user.UID,
		Email:     email,
		Username:  username,
		Token:     token,
		CreatedAt: user.CreatedAt,
	}, nil
}

// 确保 userService 实现了 UserService 接口
var _ UserService = (*userService)(nil)
