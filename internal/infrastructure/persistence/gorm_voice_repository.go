package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/repository"
	"github.com/nexlearn/agenthub/internal/infrastructure/persistence/models"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// GormVoiceRepository GORM 实现的用户音色仓储
type GormVoiceRepository struct {
	db *gorm.DB
}

// NewGormVoiceRepository 创建 GORM 用户音色仓储
func NewGormVoiceRepository(db *gorm.DB) repository.VoiceRepository {
	return &GormVoiceRepository{
		db: db,
	}
}

// Clone 冲突容忍插入。冲突与否由数据库在一条 INSERT ... ON CONFLICT DO NOTHING
// 里判定，没有部分失败窗口；零行受影响时补一次读取返回已有记录。
func (r *GormVoiceRepository) Clone(ctx context.Context, userID uint64, voiceID string) (*entity.UserVoice, bool, error) {
	voice, err := entity.NewUserVoice(userID, voiceID)
	if err != nil {
		return nil, false, domainErrors.NewInvalidInputError(err.Error())
	}

	model := &models.UserVoiceModel{
		UserID:    voice.UserID,
		VoiceID:   voice.VoiceID,
		CreatedAt: voice.CreatedAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "voice_id"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return nil, false, translateDBError("failed to clone voice", result.Error)
	}

	if result.RowsAffected == 0 {
		var existing models.UserVoiceModel
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND voice_id = ?", userID, voiceID).
			First(&existing).Error
		if err != nil {
			return nil, false, translateDBError("failed to load existing voice", err)
		}
		return voiceToEntity(&existing), true, nil
	}

	return voiceToEntity(model), false, nil
}

// ListByUser 用户保存的全部音色，新建在前
func (r *GormVoiceRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.UserVoice, error) {
	var modelList []models.UserVoiceModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, translateDBError("failed to list voices", err)
	}

	voices := make([]*entity.UserVoice, 0, len(modelList))
	for i := range modelList {
		voices = append(voices, voiceToEntity(&modelList[i]))
	}

	return voices, nil
}

// Delete 删除用户的某个音色
func (r *GormVoiceRepository) Delete(ctx context.Context, userID uint64, voiceID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND voice_id = ?", userID, voiceID).
		Delete(&models.UserVoiceModel{})
	if result.Error != nil {
		return translateDBError("failed to delete voice", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("voice not found")
	}
	return nil
}

func voiceToEntity(model *models.UserVoiceModel) *entity.UserVoice {
	return &entity.UserVoice{
		ID:        model.ID,
		UserID:    model.UserID,
		VoiceID:   model.VoiceID,
		CreatedAt: model.CreatedAt,
	}
}
