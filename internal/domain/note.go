package domain

import (
	"context"

	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// Note 笔记业务实体
type Note struct {
	ID           int64      `json:"id"`
	UID          int64      `json:"uid"`
	NoteID       string     `json:"noteId"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         string     `json:"tags"`
	ContentHash  string     `json:"-"`
	SnapshotHash string     `json:"-"`
	CreatedAt    timex.Time `json:"createdAt"`
	UpdatedAt    timex.Time `json:"updatedAt"`
}

// IsDirty 判断笔记内容自上次快照后是否发生变化
func (n *Note) IsDirty() bool {
	return n.ContentHash != n.SnapshotHash
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByNoteID 获取指定用户的指定笔记
	GetByNoteID(ctx context.Context, uid int64, noteID string) (*Note, error)
	// Upsert 创建或更新笔记，返回笔记实体
	Upsert(ctx context.Context, note *Note) (*Note, error)
	// ListDirty 列出所有内容与快照不一致的笔记
	ListDirty(ctx context.Context) ([]*Note, error)
	// UpdateSnapshot 将笔记的快照哈希更新为指定值
	UpdateSnapshot(ctx context.Context, uid int64, noteID string, snapshotHash string) error
	// Delete 删除指定用户的指定笔记
	Delete(ctx context.Context, uid int64, noteID string) error
}
