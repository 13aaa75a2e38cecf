package model

import (
	"github.com/haierkeys/collab-note-service/pkg/timex"
)

// User 用户表模型
// History 字段以 JSON 数组字符串存放该用户的笔记浏览历史
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;size:100;uniqueIndex" json:"email"`
	Username  string     `gorm:"column:username;size:100" json:"username"`
	Password  string     `gorm:"column:password;size:100" json:"-"`
	Salt      string     `gorm:"column:salt;size:50" json:"-"`
	Token     string     `gorm:"column:token;size:500" json:"-"`
	History   string     `gorm:"column:history;type:longtext" json:"-"`
	IsDeleted int        `gorm:"column:is_deleted;default:0" json:"-"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName 指定表名
func (m *User) TableName() string {
	return "user"
}
