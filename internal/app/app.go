package app

import (
	"context"

	"github.com/haierkeys/collab-note-service/internal/dao"
	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/service"
	pkgapp "github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/noteid"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，集中装配仓储、服务和基础设施依赖
type App struct {
	config *AppConfig
	logger *zap.Logger
	db     *gorm.DB

	userRepo     domain.UserRepository
	noteRepo     domain.NoteRepository
	revisionRepo domain.RevisionRepository

	historyService  service.HistoryService
	noteService     service.NoteService
	userService     service.UserService
	revisionService service.RevisionService

	tokenManager pkgapp.TokenManager
}

// NewApp 创建并装配应用容器
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	d := dao.New(db, logger)

	userRepo := dao.NewUserRepository(d)
	noteRepo := dao.NewNoteRepository(d)
	revisionRepo := dao.NewRevisionRepository(d)

	tokenManager := pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	migrator := noteid.NewMigrator(logger)

	historyService := service.NewHistoryService(userRepo, migrator, logger)
	noteService := service.NewNoteService(noteRepo, revisionRepo, historyService, migrator, logger)
	revisionService := service.NewRevisionService(noteRepo, revisionRepo, logger)
	userService := service.NewUserService(userRepo, tokenManager, cfg.User.RegisterIsEnable, logger)

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		revisionRepo:    revisionRepo,
		historyService:  historyService,
		noteService:     noteService,
		userService:     userService,
		revisionService: revisionService,
		tokenManager:    tokenManager,
	}, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志对象
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// HistoryService 获取历史记录服务
func (a *App) HistoryService() service.HistoryService {
	return a.historyService
}

// NoteService 获取笔记服务
func (a *App) NoteService() service.NoteService {
	return a.noteService
}

// UserService 获取用户服务
func (a *App) UserService() service.UserService {
	return a.userService
}

// RevisionService 获取修订版本服务
func (a *App) RevisionService() service.RevisionService {
	return a.revisionService
}

// TokenManager 获取 Token 管理器
func (a *App) TokenManager() pkgapp.TokenManager {
	return a.tokenManager
}

// Shutdown 优雅关闭容器持有的资源
func (a *App) Shutdown(ctx context.Context) error {
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}

		done := make(chan error, 1)
		go func() {
			done <- sqlDB.Close()
		}()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
