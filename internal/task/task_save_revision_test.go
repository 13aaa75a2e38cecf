package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeRevisionService 可编程的 RevisionService，记录调用次数
type fakeRevisionService struct {
	calls int
	saved int
	err   error
}

func (f *fakeRevisionService) SaveAllDirtyNotes(ctx context.Context) (int, error) {
	f.calls++
	return f.saved, f.err
}

// 一轮执行没有笔记需要保存时进入休眠，休眠期间不再触发保存
func TestSaveRevisionTaskSleepsWhenIdle(t *testing.T) {
	svc := &fakeRevisionService{saved: 0}
	task := NewSaveRevisionTask(svc, time.Minute, zap.NewNop())

	assert.Nil(t, task.Run(context.Background()))
	assert.True(t, task.IsSleeping())
	assert.Equal(t, 1, svc.calls)

	// 休眠中的轮次直接跳过
	assert.Nil(t, task.Run(context.Background()))
	assert.Nil(t, task.Run(context.Background()))
	assert.Equal(t, 1, svc.calls)
}

// Wake 唤醒后恢复保存
func TestSaveRevisionTaskWake(t *testing.T) {
	svc := &fakeRevisionService{saved: 0}
	task := NewSaveRevisionTask(svc, time.Minute, zap.NewNop())

	assert.Nil(t, task.Run(context.Background()))
	assert.True(t, task.IsSleeping())

	task.Wake()
	assert.False(t, task.IsSleeping())

	assert.Nil(t, task.Run(context.Background()))
	assert.Equal(t, 2, svc.calls)
}

// 有保存动作时保持活跃
func TestSaveRevisionTaskStaysActive(t *testing.T) {
	svc := &fakeRevisionService{saved: 3}
	task := NewSaveRevisionTask(svc, time.Minute, zap.NewNop())

	assert.Nil(t, task.Run(context.Background()))
	assert.False(t, task.IsSleeping())

	assert.Nil(t, task.Run(context.Background()))
	assert.Equal(t, 2, svc.calls)
}

// 保存失败时不进入休眠，下一轮继续重试
func TestSaveRevisionTaskErrorKeepsAwake(t *testing.T) {
	svc := &fakeRevisionService{err: errors.New("db unavailable")}
	task := NewSaveRevisionTask(svc, time.Minute, zap.NewNop())

	err := task.Run(context.Background())
	assert.NotNil(t, err)
	assert.False(t, task.IsSleeping())

	_ = task.Run(context.Background())
	assert.Equal(t, 2, svc.calls)
}

func TestSaveRevisionTaskDefaults(t *testing.T) {
	svc := &fakeRevisionService{}
	task := NewSaveRevisionTask(svc, 0, zap.NewNop())

	assert.Equal(t, "SaveRevision", task.Name())
	assert.Equal(t, DefaultSaveRevisionInterval, task.LoopInterval())
	assert.False(t, task.IsStartupRun())
	assert.False(t, task.IsSleeping())
}
