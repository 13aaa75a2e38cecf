// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/dto"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/noteid"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// HistoryService 定义用户浏览历史业务服务接口
// 历史记录以 JSON 数组字符串持久化在用户表中，读取时做旧格式标识迁移
type HistoryService interface {
	// Get 获取用户的全部历史记录
	Get(ctx context.Context, uid int64) ([]*dto.HistoryEntry, error)

	// Update 更新单条历史记录的标题和标签，不存在时创建
	// ts 为访问时间毫秒时间戳，传 0 时使用当前时间；已存在条目的置顶状态保持不变
	Update(ctx context.Context, uid int64, noteID string, title string, tags []string, ts int64) error

	// SetPinned 设置单条历史记录的置顶状态
	SetPinned(ctx context.Context, uid int64, noteID string, pinned bool) error

	// ReplaceAll 用客户端提交的 JSON 数组全量覆盖历史记录
	ReplaceAll(ctx context.Context, uid int64, historyJSON string) error

	// Delete 删除单条历史记录
	Delete(ctx context.Context, uid int64, noteID string) error

	// DeleteAll 清空用户的全部历史记录
	DeleteAll(ctx context.Context, uid int64) error
}

// historyService 实现 HistoryService 接口
type historyService struct {
	userRepo domain.UserRepository
	migrator *noteid.Migrator
	sf       *singleflight.Group
	logger   *zap.Logger
}

// NewHistoryService 创建 HistoryService 实例
func NewHistoryService(userRepo domain.UserRepository, migrator *noteid.Migrator, logger *zap.Logger) HistoryService {
	return &historyService{
		userRepo: userRepo,
		migrator: migrator,
		sf:       &singleflight.Group{},
		logger:   logger,
	}
}

// loadEntries 读取用户历史记录并完成旧标识迁移
// 同一标识迁移后发生碰撞时保留后出现的条目
func (s *historyService) loadEntries(ctx context.Context, uid int64) ([]*dto.HistoryEntry, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	if user.History == "" {
		return []*dto.HistoryEntry{}, nil
	}

	var entries []*dto.HistoryEntry
	if err := sonic.UnmarshalString(user.History, &entries); err != nil {
		s.logger.Error("parse stored history failed", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorHistoryReadFail
	}

	for _, entry := range entries {
		entry.ID = s.migrator.Migrate(entry.ID)
		if entry.Tags == nil {
			entry.Tags = []string{}
		}
	}
	return entries, nil
}

// saveEntries 将历史记录序列化后覆盖写回用户表
func (s *historyService) saveEntries(ctx context.Context, uid int64, entries []*dto.HistoryEntry) error {
	if entries == nil {
		entries = []*dto.HistoryEntry{}
	}
	content, err := sonic.MarshalString(entries)
	if err != nil {
		return code.ErrorHistoryWriteFail.WithDetails(err.Error())
	}

	rows, err := s.userRepo.UpdateHistory(ctx, uid, content)
	if err != nil {
		return code.ErrorHistoryWriteFail.WithDetails(err.Error())
	}
	if rows == 0 {
		return code.ErrorUserNotExist
	}
	return nil
}

// entriesToMap 将历史数组转换为以标识为键的映射，重复标识后者覆盖前者
func entriesToMap(entries []*dto.HistoryEntry) map[string]*dto.HistoryEntry {
	m := make(map[string]*dto.HistoryEntry, len(entries))
	for _, entry := range entries {
		m[entry.ID] = entry
	}
	return m
}

// mapToEntries 将映射还原为历史数组
func mapToEntries(m map[string]*dto.HistoryEntry) []*dto.HistoryEntry {
	entries := make([]*dto.HistoryEntry, 0, len(m))
	for _, entry := range m {
		entries = append(entries, entry)
	}
	return entries
}

// Get 获取用户的全部历史记录
func (s *historyService) Get(ctx context.Context, uid int64) ([]*dto.HistoryEntry, error) {
	return s.loadEntries(ctx, uid)
}

// Update 更新单条历史记录的标题和标签
// 同一用户的读改写之间没有行级锁，并发更新以后写为准
func (s *historyService) Update(ctx context.Context, uid int64, noteID string, title string, tags []string, ts int64) error {
	entries, err := s.loadEntries(ctx, uid)
	if err != nil {
		return err
	}

	if tags == nil {
		tags = []string{}
	}
	if ts <= 0 {
		ts = time.Now().UnixMilli()
	}

	m := entriesToMap(entries)
	if entry, ok := m[noteID]; ok {
		// 置顶状态只能由 SetPinned 修改
		entry.Text = title
		entry.Tags = tags
		entry.Time = ts
	} else {
		m[noteID] = &dto.HistoryEntry{
			ID:     noteID,
			Text:   title,
			Time:   ts,
			Tags:   tags,
			Pinned: false,
		}
	}

	return s.saveEntries(ctx, uid, mapToEntries(m))
}

// SetPinned 设置单条历史记录的置顶状态
func (s *historyService) SetPinned(ctx context.Context, uid int64, noteID string, pinned bool) error {
	entries, err := s.loadEntries(ctx, uid)
	if err != nil {
		return err
	}

	m := entriesToMap(entries)
	entry, ok := m[noteID]
	if !ok {
		return code.ErrorHistoryNotFound
	}
	entry.Pinned = pinned

	return s.saveEntries(ctx, uid, mapToEntries(m))
}

// ReplaceAll 用客户端提交的 JSON 数组全量覆盖历史记录
func (s *historyService) ReplaceAll(ctx context.Context, uid int64, historyJSON string) error {
	var entries []*dto.HistoryEntry
	if err := sonic.UnmarshalString(historyJSON, &entries); err != nil {
		return code.ErrorHistoryBadPayload.WithDetails(err.Error())
	}

	for _, entry := range entries {
		entry.ID = s.migrator.Migrate(entry.ID)
		if entry.Tags == nil {
			entry.Tags = []string{}
		}
	}

	return s.saveEntries(ctx, uid, entries)
}

// Delete 删除单条历史记录
func (s *historyService) Delete(ctx context.Context, uid int64, noteID string) error {
	entries, err := s.loadEntries(ctx, uid)
	if err != nil {
		return err
	}

	m := entriesToMap(entries)
	if _, ok := m[noteID]; !ok {
		return code.ErrorHistoryNotFound
	}
	delete(m, noteID)

	return s.saveEntries(ctx, uid, mapToEntries(m))
}

// DeleteAll 清空用户的全部历史记录
func (s *historyService) DeleteAll(ctx context.Context, uid int64) error {
	// singleflight 合并同一用户的并发清空请求
	// 写入使用脱离取消的上下文，发起方请求被取消不影响被合并的调用
	_, err, _ := s.sf.Do("history_clear_"+strconv.FormatInt(uid, 10), func() (interface{}, error) {
		return nil, s.saveEntries(context.WithoutCancel(ctx), uid, []*dto.HistoryEntry{})
	})
	return err
}

// 确保 historyService 实现了 HistoryService 接口
var _ HistoryService = (*historyService)(nil)
