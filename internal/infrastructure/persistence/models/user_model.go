package models

import "time"

// UserModel 数据库用户模型
// 本服务只读这张表：作为 agents.creator_id 的外键目标，
// 以及列表查询时左联接出的创建者公开身份。
type UserModel struct {
	ID       uint64 `gorm:"primaryKey"`
	PublicID string `gorm:"size:36;uniqueIndex"`
	Name     string `gorm:"size:128"`
	Email    string `gorm:"size:255;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}
