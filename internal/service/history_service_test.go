package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/dto"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/noteid"

	"github.com/bytedance/sonic"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeUserRepository 内存版 UserRepository，仅用于测试
type fakeUserRepository struct {
	users map[int64]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	if u, ok := r.users[uid]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	uid := int64(len(r.users) + 1)
	user.UID = uid
	r.users[uid] = user
	return uid, nil
}

func (r *fakeUserRepository) UpdateHistory(ctx context.Context, uid int64, history string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if u, ok := r.users[uid]; ok {
		u.History = history
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepository) UpdateToken(ctx context.Context, uid int64, token string) error {
	if u, ok := r.users[uid]; ok {
		u.Token = token
	}
	return nil
}

var _ domain.UserRepository = (*fakeUserRepository)(nil)

func newTestHistoryService(repo domain.UserRepository) HistoryService {
	return NewHistoryService(repo, noteid.NewMigrator(zap.NewNop()), zap.NewNop())
}

// assertCode 断言错误是指定的业务错误码
func assertCode(t *testing.T, expected *code.Code, err error) {
	t.Helper()
	var c *code.Code
	if !errors.As(err, &c) {
		t.Fatalf("expected code error, got %v", err)
	}
	assert.Equal(t, expected.Code(), c.Code())
}

func TestHistoryGetEmpty(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: ""}
	svc := newTestHistoryService(repo)

	entries, err := svc.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.Empty(t, entries)
}

func TestHistoryGetUserNotExist(t *testing.T) {
	svc := newTestHistoryService(newFakeUserRepository())

	_, err := svc.Get(context.Background(), 99)
	assertCode(t, code.ErrorUserNotExist, err)
}

func TestHistoryGetCorruptStored(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "{not json"}
	svc := newTestHistoryService(repo)

	_, err := svc.Get(context.Background(), 1)
	assertCode(t, code.ErrorHistoryReadFail, err)
}

// 读取时完成旧编码 ID 的迁移
func TestHistoryGetMigratesLegacyID(t *testing.T) {
	source := "ad3f7c2e-3a5c-4c2b-9d6e-1f2a3b4c5d6e"
	legacyID := strings.Repeat("x", noteid.LegacyGateLength+1)
	migrated, err := noteid.Encode(source)
	assert.Nil(t, err)

	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: legacyID, Text: "Old note", Time: 1000, Tags: []string{"a"}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}

	migrator := noteid.NewMigrator(zap.NewNop(), noteid.WithDecode(func(s string) (string, error) {
		return source, nil
	}))
	svc := NewHistoryService(repo, migrator, zap.NewNop())

	entries, err := svc.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, migrated, entries[0].ID)
	assert.Equal(t, "Old note", entries[0].Text)
}

func TestHistoryUpdateCreatesEntry(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "[]"}
	svc := newTestHistoryService(repo)

	err := svc.Update(context.Background(), 1, "note1", "My Note", []string{"work"}, 0)
	assert.Nil(t, err)

	entries, err := svc.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "note1", entries[0].ID)
	assert.Equal(t, "My Note", entries[0].Text)
	assert.Equal(t, []string{"work"}, entries[0].Tags)
	assert.False(t, entries[0].Pinned)
	assert.Greater(t, entries[0].Time, int64(0))
}

// 更新已有条目时置顶状态保持不变
func TestHistoryUpdatePreservesPinned(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "Old title", Time: 1000, Tags: []string{}, Pinned: true},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.Update(context.Background(), 1, "note1", "New title", []string{"x"}, 0)
	assert.Nil(t, err)

	entries, err := svc.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "New title", entries[0].Text)
	assert.True(t, entries[0].Pinned)
	assert.Greater(t, entries[0].Time, int64(1000))
}

// 调用方提供时间戳时原样写入，不取当前时间
func TestHistoryUpdateSuppliedTimestamp(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "noteA", Text: "A", Time: 1000, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.Update(context.Background(), 1, "noteA", "A", []string{}, 2000)
	assert.Nil(t, err)

	entries, err := svc.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(2000), entries[0].Time)
}

func TestHistorySetPinned(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "Note", Time: 1000, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.SetPinned(context.Background(), 1, "note1", true)
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.True(t, entries[0].Pinned)

	// 置顶状态之外的字段不受影响
	assert.Equal(t, "Note", entries[0].Text)
	assert.Equal(t, int64(1000), entries[0].Time)
}

func TestHistorySetPinnedNotFound(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "[]"}
	svc := newTestHistoryService(repo)

	err := svc.SetPinned(context.Background(), 1, "missing", true)
	assertCode(t, code.ErrorHistoryNotFound, err)
}

func TestHistoryDelete(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "A", Time: 1, Tags: []string{}},
		{ID: "note2", Text: "B", Time: 2, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.Delete(context.Background(), 1, "note1")
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.Len(t, entries, 1)
	assert.Equal(t, "note2", entries[0].ID)
}

func TestHistoryDeleteNotFound(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "[]"}
	svc := newTestHistoryService(repo)

	err := svc.Delete(context.Background(), 1, "missing")
	assertCode(t, code.ErrorHistoryNotFound, err)
}

func TestHistoryReplaceAll(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "[]"}
	svc := newTestHistoryService(repo)

	payload, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "A", Time: 1, Tags: []string{"t"}},
		{ID: "note2", Text: "B", Time: 2, Tags: []string{}},
	})
	err := svc.ReplaceAll(context.Background(), 1, payload)
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.Len(t, entries, 2)
}

func TestHistoryReplaceAllBadPayload(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: "[]"}
	svc := newTestHistoryService(repo)

	err := svc.ReplaceAll(context.Background(), 1, "{oops")
	assertCode(t, code.ErrorHistoryBadPayload, err)
}

func TestHistoryReplaceAllEmpty(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "A", Time: 1, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.ReplaceAll(context.Background(), 1, "[]")
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.Empty(t, entries)
}

func TestHistoryDeleteAll(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "A", Time: 1, Tags: []string{}},
		{ID: "note2", Text: "B", Time: 2, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	err := svc.DeleteAll(context.Background(), 1)
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.Empty(t, entries)
}

// 发起方请求被取消不影响清空写入
func TestHistoryDeleteAllCancelledCaller(t *testing.T) {
	stored, _ := sonic.MarshalString([]*dto.HistoryEntry{
		{ID: "note1", Text: "A", Time: 1, Tags: []string{}},
	})
	repo := newFakeUserRepository()
	repo.users[1] = &domain.User{UID: 1, History: stored}
	svc := newTestHistoryService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.DeleteAll(ctx, 1)
	assert.Nil(t, err)

	entries, _ := svc.Get(context.Background(), 1)
	assert.Empty(t, entries)
}

// 数组与映射互转：唯一 ID 时互逆，重复 ID 时后者覆盖前者
func TestProperty_EntriesMapRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("unique ids survive map round trip", prop.ForAll(
		func(ids []string) bool {
			seen := make(map[string]bool)
			entries := make([]*dto.HistoryEntry, 0, len(ids))
			for _, id := range ids {
				if seen[id] {
					continue
				}
				seen[id] = true
				entries = append(entries, &dto.HistoryEntry{ID: id, Tags: []string{}})
			}

			got := mapToEntries(entriesToMap(entries))
			if len(got) != len(entries) {
				return false
			}

			wantIDs := make([]string, 0, len(entries))
			gotIDs := make([]string, 0, len(got))
			for _, e := range entries {
				wantIDs = append(wantIDs, e.ID)
			}
			for _, e := range got {
				gotIDs = append(gotIDs, e.ID)
			}
			sort.Strings(wantIDs)
			sort.Strings(gotIDs)

			for i := range wantIDs {
				if wantIDs[i] != gotIDs[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestEntriesToMapLastWins(t *testing.T) {
	entries := []*dto.HistoryEntry{
		{ID: "dup", Text: "first", Tags: []string{}},
		{ID: "dup", Text: "second", Tags: []string{}},
	}

	m := entriesToMap(entries)
	assert.Len(t, m, 1)
	assert.Equal(t, "second", m["dup"].Text)
}
