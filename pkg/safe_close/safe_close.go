// Package safe_close 提供统一的优雅关闭协调器
// 各个子系统通过 Attach 注册自己的关闭处理器，任意一方调用
// SendCloseSignal 后，所有处理器收到关闭信号并完成清理
package safe_close

import (
	"sync"
)

// SafeClose 关闭协调器
type SafeClose struct {
	mu        sync.Mutex
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeCh   chan struct{}
	err       error
}

// NewSafeClose 创建关闭协调器
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach 注册一个关闭处理器并立即在独立 goroutine 中运行
// f 必须在完成清理后调用 done，并监听 closeSignal
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeCh)
}

// SendCloseSignal 发送关闭信号，只有第一个错误会被记录
// 可以被多次调用，重复调用为 no-op
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// ReceiveCloseSignal 返回关闭信号通道
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeCh
}

// WaitClosed 阻塞直到所有处理器完成，返回触发关闭的错误（如有）
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
