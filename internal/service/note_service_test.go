package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/collab-note-service/internal/dto"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/noteid"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingHistoryService 记录 Update 调用，其余操作为空实现
type recordingHistoryService struct {
	updates   chan string
	updateErr error
}

func (s *recordingHistoryService) Get(ctx context.Context, uid int64) ([]*dto.HistoryEntry, error) {
	return nil, nil
}

func (s *recordingHistoryService) Update(ctx context.Context, uid int64, noteID string, title string, tags []string, ts int64) error {
	s.updates <- noteID
	return s.updateErr
}

func (s *recordingHistoryService) SetPinned(ctx context.Context, uid int64, noteID string, pinned bool) error {
	return nil
}

func (s *recordingHistoryService) ReplaceAll(ctx context.Context, uid int64, historyJSON string) error {
	return nil
}

func (s *recordingHistoryService) Delete(ctx context.Context, uid int64, noteID string) error {
	return nil
}

func (s *recordingHistoryService) DeleteAll(ctx context.Context, uid int64) error {
	return nil
}

var _ HistoryService = (*recordingHistoryService)(nil)

func newTestNoteService(noteRepo *fakeNoteRepository, history HistoryService) NoteService {
	return NewNoteService(noteRepo, &fakeRevisionRepository{}, history, noteid.NewMigrator(zap.NewNop()), zap.NewNop())
}

func TestNoteSaveGeneratesID(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	history := &recordingHistoryService{updates: make(chan string, 1)}
	svc := newTestNoteService(noteRepo, history)

	note, err := svc.Save(context.Background(), 1, &dto.NoteSaveRequest{
		Content: "# Fresh Note\n\nbody",
	})
	assert.Nil(t, err)
	assert.NotEmpty(t, note.NoteID)
	assert.LessOrEqual(t, len(note.NoteID), noteid.LegacyGateLength)
	assert.Equal(t, "Fresh Note", note.Title)

	// 浏览历史异步刷新
	select {
	case id := <-history.updates:
		assert.Equal(t, note.NoteID, id)
	case <-time.After(time.Second):
		t.Fatal("history update not triggered")
	}
}

func TestNoteSaveWakes(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	history := &recordingHistoryService{updates: make(chan string, 1)}
	svc := newTestNoteService(noteRepo, history)

	woke := 0
	svc.SetWake(func() { woke++ })

	_, err := svc.Save(context.Background(), 1, &dto.NoteSaveRequest{Content: "text"})
	assert.Nil(t, err)
	assert.Equal(t, 1, woke)
	<-history.updates
}

// 历史刷新因用户不存在失败时静默跳过，不记错误日志
func TestNoteSaveHistoryUserAbsentSilent(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	history := &recordingHistoryService{updates: make(chan string, 1), updateErr: code.ErrorUserNotExist}
	svc := NewNoteService(newFakeNoteRepository(), &fakeRevisionRepository{}, history, noteid.NewMigrator(zap.NewNop()), zap.New(core))

	_, err := svc.Save(context.Background(), 1, &dto.NoteSaveRequest{Content: "text"})
	assert.Nil(t, err)
	<-history.updates

	assert.Eventually(t, func() bool {
		return observed.FilterLevelExact(zapcore.DebugLevel).Len() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Zero(t, observed.FilterLevelExact(zapcore.ErrorLevel).Len())
}

// 历史刷新的存储故障仍记错误日志
func TestNoteSaveHistoryStoreFailureLogged(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	history := &recordingHistoryService{updates: make(chan string, 1), updateErr: code.ErrorHistoryWriteFail}
	svc := NewNoteService(newFakeNoteRepository(), &fakeRevisionRepository{}, history, noteid.NewMigrator(zap.NewNop()), zap.New(core))

	_, err := svc.Save(context.Background(), 1, &dto.NoteSaveRequest{Content: "text"})
	assert.Nil(t, err)
	<-history.updates

	assert.Eventually(t, func() bool {
		return observed.FilterLevelExact(zapcore.ErrorLevel).Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNoteGetNotExist(t *testing.T) {
	svc := newTestNoteService(newFakeNoteRepository(), &recordingHistoryService{updates: make(chan string, 1)})

	_, err := svc.Get(context.Background(), 1, "missing")
	assertCode(t, code.ErrorNoteNotExist, err)
}

func TestNoteSaveThenGet(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	history := &recordingHistoryService{updates: make(chan string, 2)}
	svc := newTestNoteService(noteRepo, history)

	saved, err := svc.Save(context.Background(), 1, &dto.NoteSaveRequest{
		Content: "---\ntitle: Tagged\ntags:\n  - a\n  - b\n---\nbody",
	})
	assert.Nil(t, err)
	assert.Equal(t, "Tagged", saved.Title)
	assert.Equal(t, []string{"a", "b"}, saved.Tags)

	got, err := svc.Get(context.Background(), 1, saved.NoteID)
	assert.Nil(t, err)
	assert.Equal(t, saved.NoteID, got.NoteID)
	assert.Equal(t, saved.Content, got.Content)
}

func TestNoteDeleteNotExist(t *testing.T) {
	svc := newTestNoteService(newFakeNoteRepository(), &recordingHistoryService{updates: make(chan string, 1)})

	err := svc.Delete(context.Background(), 1, "missing")
	assertCode(t, code.ErrorNoteNotExist, err)
}
