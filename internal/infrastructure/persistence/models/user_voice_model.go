package models

import "time"

// UserVoiceModel 用户音色关联模型
// (user_id, voice_id) 组合唯一，克隆操作依赖这个约束做幂等插入。
type UserVoiceModel struct {
	ID      uint64 `gorm:"primaryKey"`
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_user_voice"`
	VoiceID string `gorm:"size:64;not null;uniqueIndex:idx_user_voice"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName 指定表名
func (UserVoiceModel) TableName() string {
	return "user_voices"
}
