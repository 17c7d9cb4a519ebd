package repository

import (
	"context"

	"github.com/nexlearn/agenthub/internal/domain/entity"
)

// VoiceRepository 用户音色仓储接口
type VoiceRepository interface {
	// Clone 冲突容忍插入：(user, voice) 已存在时返回已有记录且 existed=true，
	// 否则插入并返回新记录。冲突判定由数据库在单条语句内完成。
	Clone(ctx context.Context, userID uint64, voiceID string) (voice *entity.UserVoice, existed bool, err error)

	// ListByUser 返回用户保存的全部音色，新建在前
	ListByUser(ctx context.Context, userID uint64) ([]*entity.UserVoice, error)

	// Delete 删除用户的某个音色；无匹配行 → NOT_FOUND
	Delete(ctx context.Context, userID uint64, voiceID string) error
}
