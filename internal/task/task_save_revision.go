package task

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/haierkeys/collab-note-service/internal/service"

	"go.uber.org/zap"
)

// DefaultSaveRevisionInterval 修订版本保存任务的默认执行间隔
const DefaultSaveRevisionInterval = 5 * time.Minute

// SaveRevisionTask 周期性为有变化的笔记保存修订版本
// 一轮执行没有任何笔记需要保存时进入休眠，新的笔记写入通过 Wake 唤醒
type SaveRevisionTask struct {
	revisionSvc service.RevisionService
	interval    time.Duration
	sleeping    atomic.Bool
	logger      *zap.Logger
}

// NewSaveRevisionTask 创建修订版本保存任务
func NewSaveRevisionTask(revisionSvc service.RevisionService, interval time.Duration, logger *zap.Logger) *SaveRevisionTask {
	if interval <= 0 {
		interval = DefaultSaveRevisionInterval
	}
	return &SaveRevisionTask{
		revisionSvc: revisionSvc,
		interval:    interval,
		logger:      logger,
	}
}

// Name 返回任务名称
func (t *SaveRevisionTask) Name() string {
	return "SaveRevision"
}

// LoopInterval 返回执行间隔
func (t *SaveRevisionTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时不立即执行
func (t *SaveRevisionTask) IsStartupRun() bool {
	return false
}

// Run 执行一轮修订版本保存
// 休眠期间直接跳过；执行失败时保持原状态，下一轮重试
func (t *SaveRevisionTask) Run(ctx context.Context) error {
	if t.sleeping.Load() {
		t.logger.Debug("save revision task sleeping, skip")
		return nil
	}

	saved, err := t.revisionSvc.SaveAllDirtyNotes(ctx)
	if err != nil {
		return err
	}

	if saved == 0 {
		t.sleeping.Store(true)
		t.logger.Debug("no dirty notes, save revision task goes to sleep")
	} else {
		t.sleeping.Store(false)
		t.logger.Info("revisions saved", zap.Int("count", saved))
	}
	return nil
}

// Wake 唤醒任务，笔记有新的写入时调用
func (t *SaveRevisionTask) Wake() {
	t.sleeping.Store(false)
}

// IsSleeping 返回任务是否处于休眠状态
func (t *SaveRevisionTask) IsSleeping() bool {
	return t.sleeping.Load()
}
