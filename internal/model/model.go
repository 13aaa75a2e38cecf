// Package model 定义数据库表模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 自动迁移所有表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Note{},
		&Revision{},
	)
}
