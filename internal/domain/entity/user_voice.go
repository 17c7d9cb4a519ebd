package entity

import "time"

// UserVoice 用户与内置音色的关联记录
// (UserID, VoiceID) 组合唯一；重复保存幂等返回已有记录。
type UserVoice struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	VoiceID   string    `json:"voice_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserVoice 创建新的音色关联
func NewUserVoice(userID uint64, voiceID string) (*UserVoice, error) {
	if userID == 0 {
		return nil, ErrInvalidUserID
	}
	if voiceID == "" {
		return nil, ErrInvalidVoiceID
	}
	return &UserVoice{
		UserID:    userID,
		VoiceID:   voiceID,
		CreatedAt: time.Now(),
	}, nil
}
