package dao

import (
	"context"

	"github.com/haierkeys/collab-note-service/internal/domain"
	"github.com/haierkeys/collab-note-service/internal/model"
	"github.com/haierkeys/collab-note-service/pkg/convert"
	"github.com/haierkeys/collab-note-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.Note{}).(*domain.Note)
}

// GetByNoteID 获取指定用户的指定笔记
func (r *noteRepository) GetByNoteID(ctx context.Context, uid int64, noteID string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("uid = ? AND note_id = ? AND is_deleted = 0", uid, noteID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Upsert 创建或更新笔记
func (r *noteRepository) Upsert(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("uid = ? AND note_id = ?", note.UID, note.NoteID).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = model.Note{
			UID:          note.UID,
			NoteID:       note.NoteID,
			Title:        note.Title,
			Content:      note.Content,
			Tags:         note.Tags,
			ContentHash:  note.ContentHash,
			SnapshotHash: note.SnapshotHash,
			CreatedAt:    timex.Now(),
			UpdatedAt:    timex.Now(),
		}
		if err := r.dao.DB().WithContext(ctx).Create(&m).Error; err != nil {
			return nil, errors.Wrap(err, "create note")
		}
		return r.toDomain(&m), nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        note.Title,
		"content":      note.Content,
		"tags":         note.Tags,
		"content_hash": note.ContentHash,
		"is_deleted":   0,
		"updated_at":   timex.Now(),
	}
	if err := r.dao.DB().WithContext(ctx).Model(&m).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update note")
	}
	return r.GetByNoteID(ctx, note.UID, note.NoteID)
}

// ListDirty 列出所有内容与快照不一致的笔记
func (r *noteRepository) ListDirty(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("content_hash <> snapshot_hash AND is_deleted = 0").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// UpdateSnapshot 将笔记的快照哈希更新为指定值
func (r *noteRepository) UpdateSnapshot(ctx context.Context, uid int64, noteID string, snapshotHash string) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.Note{}).
		Where("uid = ? AND note_id = ?", uid, noteID).
		Update("snapshot_hash", snapshotHash).Error
}

// Delete 软删除指定用户的指定笔记
func (r *noteRepository) Delete(ctx context.Context, uid int64, noteID string) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.Note{}).
		Where("uid = ? AND note_id = ?", uid, noteID).
		Updates(map[string]interface{}{
			"is_deleted": 1,
			"updated_at": timex.Now(),
		}).Error
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
