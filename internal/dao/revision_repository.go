package dao

import (
	"context"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/model"
	"github.com/haierkeys/collab-note-service/pkg/convert"
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// revisionRepository 实现 domain.RevisionRepository 接口
type revisionRepository struct {
	dao *Dao
}

// NewRevisionRepository 创建 RevisionRepository 实例
func NewRevisionRepository(dao *Dao) domain.RevisionRepository {
	return &revisionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *revisionRepository) toDomain(m *model.Revision) *domain.Revision {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.Revision{}).(*domain.Revision)
}

// Create 创建修订版本记录
func (r *revisionRepository) Create(ctx context.Context, revision *domain.Revision) (int64, error) {
	m := &model.Revision{
		UID:       revision.UID,
		NoteID:    revision.NoteID,
		Content:   revision.Content,
		Patch:     revision.Patch,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// GetLatest 获取指定笔记最近一次修订版本
func (r *revisionRepository) GetLatest(ctx context.Context, uid int64, noteID string) (*domain.Revision, error) {
	var m model.Revision
	err := r.dao.DB().WithContext(ctx).
		Where("uid = ? AND note_id = ?", uid, noteID).
		Order("id DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByNote 按时间倒序列出指定笔记的修订版本
func (r *revisionRepository) ListByNote(ctx context.Context, uid int64, noteID string, limit int) ([]*domain.Revision, error) {
	if limit <= 0 {
		limit = 50
	}
	var ms []*model.Revision
	err := r.dao.DB().WithContext(ctx).
		Where("uid = ? AND note_id = ?", uid, noteID).
		Order("id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	revisions := make([]*domain.Revision, 0, len(ms))
	for _, m := range ms {
		revisions = append(revisions, r.toDomain(m))
	}
	return revisions, nil
}

// 确保 revisionRepository 实现了 domain.RevisionRepository 接口
var _ domain.RevisionRepository = (*revisionRepository)(nil)
