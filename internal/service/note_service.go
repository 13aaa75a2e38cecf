package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/dto"
	"github.com/haierkeys/collab-note-service/pkg/code"
	"github.com/haierkeys/collab-note-service/pkg/noteid"
	"github.com/haierkeys/collab-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Get 获取单条笔记，标识为旧格式时先迁移
	Get(ctx context.Context, uid int64, noteID string) (*dto.NoteResponse, error)

	// Save 创建或更新笔记，异步刷新浏览历史并唤醒修订保存任务
	Save(ctx context.Context, uid int64, params *dto.NoteSaveRequest) (*dto.NoteResponse, error)

	// Delete 删除笔记
	Delete(ctx context.Context, uid int64, noteID string) error

	// ListRevisions 列出笔记的修订版本
	ListRevisions(ctx context.Context, uid int64, noteID string, limit int) ([]*dto.RevisionResponse, error)

	// SetWake 注入修订保存任务的唤醒回调
	SetWake(wake func())
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo     domain.NoteRepository
	revisionRepo domain.RevisionRepository
	historySvc   HistoryService
	migrator     *noteid.Migrator
	wake         func()
	logger       *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, revisionRepo domain.RevisionRepository, historySvc HistoryService, migrator *noteid.Migrator, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo:     noteRepo,
		revisionRepo: revisionRepo,
		historySvc:   historySvc,
		migrator:     migrator,
		logger:       logger,
	}
}

// SetWake 注入修订保存任务的唤醒回调
func (s *noteService) SetWake(wake func()) {
	s.wake = wake
}

// toResponse 将领域模型转换为响应 DTO
func (s *noteService) toResponse(note *domain.Note) *dto.NoteResponse {
	if note == nil {
		return nil
	}
	tags := []string{}
	if note.Tags != "" {
		tags = strings.Split(note.Tags, ",")
	}
	return &dto.NoteResponse{
		NoteID:    note.NoteID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, uid int64, noteID string) (*dto.NoteResponse, error) {
	noteID = s.migrator.Migrate(noteID)

	note, err := s.noteRepo.GetByNoteID(ctx, uid, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}
	return s.toResponse(note), nil
}

// Save 创建或更新笔记
func (s *noteService) Save(ctx context.Context, uid int64, params *dto.NoteSaveRequest) (*dto.NoteResponse, error) {
	id := params.NoteID
	if id == "" {
		id = noteid.New()
	} else {
		id = s.migrator.Migrate(id)
	}

	info := ParseNoteInfo(params.Content)

	note, err := s.noteRepo.Upsert(ctx, &domain.Note{
		UID:         uid,
		NoteID:      id,
		Title:       info.Title,
		Content:     params.Content,
		Tags:        strings.Join(info.Tags, ","),
		ContentHash: util.EncodeMD5(params.Content),
	})
	if err != nil {
		return nil, code.ErrorNoteSaveFail.WithDetails(err.Error())
	}

	// 浏览历史的刷新不阻塞保存，失败只记日志
	go func() {
		hctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.historySvc.Update(hctx, uid, note.NoteID, info.Title, info.Tags, 0)
		if err == nil {
			return
		}
		// 用户不存在不算存储故障，静默跳过
		var c *code.Code
		if errors.As(err, &c) && c.Code() == code.ErrorUserNotExist.Code() {
			s.logger.Debug("skip history update, user not exist", zap.Int64("uid", uid), zap.String("noteId", note.NoteID))
			return
		}
		s.logger.Error("update history failed", zap.Int64("uid", uid), zap.String("noteId", note.NoteID), zap.Error(err))
	}()

	if s.wake != nil {
		s.wake()
	}

	return s.toResponse(note), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid int64, noteID string) error {
	noteID = s.migrator.Migrate(noteID)

	if _, err := s.noteRepo.GetByNoteID(ctx, uid, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		return code.ErrorDBQueryFail.WithDetails(err.Error())
	}
	if err := s.noteRepo.Delete(ctx, uid, noteID); err != nil {
		return code.ErrorDBQueryFail.WithDetails(err.Error())
	}
	return nil
}

// ListRevisions 列出笔记的修订版本
func (s *noteService) ListRevisions(ctx context.Context, uid int64, noteID string, limit int) ([]*dto.RevisionResponse, error) {
	noteID = s.migrator.Migrate(noteID)

	revisions, err := s.revisionRepo.ListByNote(ctx, uid, noteID, limit)
	if err != nil {
		return nil, code.ErrorDBQueryFail.WithDetails(err.Error())
	}

	list := make([]*dto.RevisionResponse, 0, len(revisions))
	for _, r := range revisions {
		list = append(list, &dto.RevisionResponse{
			ID:        r.ID,
			NoteID:    r.NoteID,
			Patch:     r.Patch,
			CreatedAt: r.CreatedAt,
		})
	}
	return list, nil
}

// 确保 noteService 实现了 NoteService 接口
var _ NoteService = (*noteService)(nil)
