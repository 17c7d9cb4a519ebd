package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/repository"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// VoiceUseCase 用户音色应用服务
type VoiceUseCase struct {
	repo    repository.VoiceRepository
	monitor *monitoring.Monitor
	logger  *zap.Logger
}

// NewVoiceUseCase 创建用户音色应用服务
func NewVoiceUseCase(repo repository.VoiceRepository, monitor *monitoring.Monitor, logger *zap.Logger) *VoiceUseCase {
	return &VoiceUseCase{
		repo:    repo,
		monitor: monitor,
		logger:  logger.With(zap.String("usecase", "voice")),
	}
}

// Clone 保存内置音色。重复保存幂等成功，existed 区分两种结果以便
// 接口层给出不同的提示消息。
func (uc *VoiceUseCase) Clone(ctx context.Context, userID uint64, voiceID string) (*entity.UserVoice, bool, error) {
	if userID == 0 {
		return nil, false, domainErrors.NewInvalidInputError("user_id is required and must be a positive integer")
	}
	if voiceID == "" {
		return nil, false, domainErrors.NewInvalidInputError("voice_id is required")
	}

	uc.monitor.IncDBOp()
	voice, existed, err := uc.repo.Clone(ctx, userID, voiceID)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return nil, false, err
	}

	if !existed {
		uc.logger.Info("Voice cloned",
			zap.Uint64("user_id", userID),
			zap.String("voice_id", voiceID),
		)
	}
	return voice, existed, nil
}

// List 用户保存的全部音色；无记录时返回空列表
func (uc *VoiceUseCase) List(ctx context.Context, userID uint64) ([]*entity.UserVoice, error) {
	if userID == 0 {
		return nil, domainErrors.NewInvalidInputError("user_id is required and must be a positive integer")
	}
	uc.monitor.IncDBOp()
	voices, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return nil, err
	}
	return voices, nil
}

// Delete 删除用户的某个音色
func (uc *VoiceUseCase) Delete(ctx context.Context, userID uint64, voiceID string) error {
	if userID == 0 {
		return domainErrors.NewInvalidInputError("user_id is required and must be a positive integer")
	}
	if voiceID == "" {
		return domainErrors.NewInvalidInputError("voice_id is required")
	}

	uc.monitor.IncDBOp()
	if err := uc.repo.Delete(ctx, userID, voiceID); err != nil {
		uc.monitor.IncDBOpFailed()
		return err
	}

	uc.logger.Info("Voice deleted",
		zap.Uint64("user_id", userID),
		zap.String("voice_id", voiceID),
	)
	return nil
}
