package models

import (
	"time"

	"gorm.io/datatypes"
)

// AgentModel 数据库智能体模型
// 三个枚举列和温度范围在数据库层再设一道 check 约束，
// 应用层校验被绕过时由数据库兜底。
type AgentModel struct {
	ID         uint64  `gorm:"primaryKey"`
	ExternalID *string `gorm:"size:36;uniqueIndex"` // 训练服务关联 UUID，注册失败为 NULL
	CreatorID  uint64  `gorm:"not null;index"`

	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"type:text"`
	AvatarURL   string `gorm:"size:255"`

	ModelName   string  `gorm:"size:128"`
	Temperature float64 `gorm:"default:0.7;check:temperature >= 0 AND temperature <= 2"`
	MaxTokens   int     `gorm:"default:2048"`

	Visibility string `gorm:"size:16;not null;default:'private';check:visibility IN ('private','campus','public')"`
	Role       string `gorm:"size:16;not null;default:'free';check:role IN ('free','paid')"`
	AgentType  string `gorm:"size:32;not null;default:'instructor';check:agent_type IN ('instructor','it_support','administration')"`

	Traits      datatypes.JSON `gorm:"type:json"`
	Personality datatypes.JSON `gorm:"type:json"`
	Courses     datatypes.JSON `gorm:"type:json"`

	PriceAmount   float64 `gorm:"default:0"`
	PriceCurrency string  `gorm:"size:8"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Creator 外键关联；删除用户时级联删除其智能体
	Creator *UserModel `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (AgentModel) TableName() string {
	return "agents"
}
