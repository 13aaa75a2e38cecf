package model

import (
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// Note 笔记表模型
// NoteID 是规范化后的短标识，同一用户下唯一
type Note struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID          int64      `gorm:"column:uid;index:idx_uid_note,unique" json:"uid"`
	NoteID       string     `gorm:"column:note_id;size:64;index:idx_uid_note,unique" json:"noteId"`
	Title        string     `gorm:"column:title;size:255" json:"title"`
	Content      string     `gorm:"column:content;type:longtext" json:"content"`
	Tags         string     `gorm:"column:tags;size:500" json:"tags"`
	ContentHash  string     `gorm:"column:content_hash;size:64" json:"-"`
	SnapshotHash string     `gorm:"column:snapshot_hash;size:64" json:"-"`
	IsDeleted    int        `gorm:"column:is_deleted;default:0" json:"-"`
	CreatedAt    timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName 指定表名
func (m *Note) TableName() string {
	return "note"
}
