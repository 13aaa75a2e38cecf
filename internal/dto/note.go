package dto

import (
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// NoteSaveRequest 保存笔记请求
// NoteID 为空时由服务端生成新标识
type NoteSaveRequest struct {
	NoteID  string `form:"noteId" json:"noteId"`
	Content string `form:"content" json:"content" binding:"required"`
}

// NoteResponse 笔记响应
type NoteResponse struct {
	NoteID    string     `json:"noteId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// RevisionResponse 修订版本响应
type RevisionResponse struct {
	ID        int64      `json:"id"`
	NoteID    string     `json:"noteId"`
	Patch     string     `json:"patch"`
	CreatedAt timex.Time `json:"createdAt"`
}
