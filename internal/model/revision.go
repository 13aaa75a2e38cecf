package model

import (
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// Revision 笔记修订版本表模型
// Patch 保存从上一快照到当前内容的文本补丁
type Revision struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64      `gorm:"column:uid;index" json:"uid"`
	NoteID    string     `gorm:"column:note_id;size:64;index" json:"noteId"`
	Content   string     `gorm:"column:content;type:longtext" json:"content"`
	Patch     string     `gorm:"column:patch;type:longtext" json:"patch"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName 指定表名
func (m *Revision) TableName() string {
	return "revision"
}
