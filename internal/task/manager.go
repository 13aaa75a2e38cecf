package task

import (
	"github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, app *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		app:       app,
		logger:    logger,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	// 修订版本保存任务，笔记写入时通过 Wake 唤醒
	saveTask := NewSaveRevisionTask(
		m.app.RevisionService(),
		m.app.Config().GetRevisionSaveInterval(),
		m.logger,
	)
	m.app.NoteService().SetWake(saveTask.Wake)
	m.scheduler.AddTask(saveTask)

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
