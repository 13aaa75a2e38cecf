package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/collab-note-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// countingTask 统计执行次数
type countingTask struct {
	runs     atomic.Int64
	interval time.Duration
	startup  bool
}

func (t *countingTask) Name() string                { return "Counting" }
func (t *countingTask) LoopInterval() time.Duration { return t.interval }
func (t *countingTask) IsStartupRun() bool          { return t.startup }

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return nil
}

// 重复 Start 不会重复挂载任务
func TestSchedulerStartIdempotent(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{startup: true}
	s.AddTask(task)

	s.Start()
	s.Start()

	sc.SendCloseSignal(nil)
	assert.Nil(t, sc.WaitClosed())
	assert.Equal(t, int64(1), task.runs.Load())
}

func TestSchedulerTicks(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{interval: 10 * time.Millisecond}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool {
		return task.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	assert.Nil(t, sc.WaitClosed())
}
