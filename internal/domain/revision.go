package domain

import (
	"context"

	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// Revision 笔记修订版本业务实体
type Revision struct {
	ID        int64      `json:"id"`
	UID       int64      `json:"uid"`
	NoteID    string     `json:"noteId"`
	Content   string     `json:"content"`
	Patch     string     `json:"patch"`
	CreatedAt timex.Time `json:"createdAt"`
}

// RevisionRepository 修订版本仓储接口
type RevisionRepository interface {
	// Create 创建修订版本记录
	Create(ctx context.Context, revision *Revision) (int64, error)
	// GetLatest 获取指定笔记最近一次修订版本，不存在时返回 gorm.ErrRecordNotFound
	GetLatest(ctx context.Context, uid int64, noteID string) (*Revision, error)
	// ListByNote 按时间倒序列出指定笔记的修订版本
	ListByNote(ctx context.Context, uid int64, noteID string, limit int) ([]*Revision, error)
}
