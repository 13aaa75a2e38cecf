package service

import (
	"context"
	"errors"

	"github.com/haierkeys/collab-note-service/internal/domain"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// RevisionService 定义修订版本业务服务接口
type RevisionService interface {
	// SaveAllDirtyNotes 为所有内容有变化的笔记生成修订版本
	// 返回成功保存的笔记数量
	SaveAllDirtyNotes(ctx context.Context) (int, error)
}

// revisionService 实现 RevisionService 接口
type revisionService struct {
	noteRepo     domain.NoteRepository
	revisionRepo domain.RevisionRepository
	dmp          *diffmatchpatch.DiffMatchPatch
	sf           *singleflight.Group
	logger       *zap.Logger
}

// NewRevisionService 创建 RevisionService 实例
func NewRevisionService(noteRepo domain.NoteRepository, revisionRepo domain.RevisionRepository, logger *zap.Logger) RevisionService {
	return &revisionService{
		noteRepo:     noteRepo,
		revisionRepo: revisionRepo,
		dmp:          diffmatchpatch.New(),
		sf:           &singleflight.Group{},
		logger:       logger,
	}
}

// SaveAllDirtyNotes 为所有内容有变化的笔记生成修订版本
// singleflight 保证同一时刻只有一轮保存在执行
func (s *revisionService) SaveAllDirtyNotes(ctx context.Context) (int, error) {
	result, err, _ := s.sf.Do("save_all_dirty_notes", func() (interface{}, error) {
		return s.saveAllDirtyNotes(ctx)
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

func (s *revisionService) saveAllDirtyNotes(ctx context.Context) (int, error) {
	notes, err := s.noteRepo.ListDirty(ctx)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, note := range notes {
		if err := s.saveRevision(ctx, note); err != nil {
			// 单篇失败不中断整轮保存
			s.logger.Error("save revision failed",
				zap.Int64("uid", note.UID),
				zap.String("noteId", note.NoteID),
				zap.Error(err))
			continue
		}
		saved++
	}
	return saved, nil
}

// saveRevision 为单篇笔记生成修订版本并推进快照
func (s *revisionService) saveRevision(ctx context.Context, note *domain.Note) error {
	baseContent := ""
	last, err := s.revisionRepo.GetLatest(ctx, note.UID, note.NoteID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if last != nil {
		baseContent = last.Content
	}

	patches := s.dmp.PatchMake(baseContent, note.Content)
	if _, err := s.revisionRepo.Create(ctx, &domain.Revision{
		UID:     note.UID,
		NoteID:  note.NoteID,
		Content: note.Content,
		Patch:   s.dmp.PatchToText(patches),
	}); err != nil {
		return err
	}

	return s.noteRepo.UpdateSnapshot(ctx, note.UID, note.NoteID, note.ContentHash)
}

// 确保 revisionService 实现了 RevisionService 接口
var _ RevisionService = (*revisionService)(nil)
