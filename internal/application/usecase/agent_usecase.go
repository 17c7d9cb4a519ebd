package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/repository"
	"github.com/nexlearn/agenthub/internal/domain/service"
	"github.com/nexlearn/agenthub/internal/domain/valueobject"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
	"github.com/nexlearn/agenthub/pkg/safego"
)

// TrainerClient 外部训练服务客户端接口（实现在基础设施层）
type TrainerClient interface {
	// Register 注册智能体，返回训练服务分配的关联 UUID
	Register(ctx context.Context, agent *entity.Agent) (string, error)
}

// trainerRegisterTimeout 后台注册调用的独立超时，与请求生命周期解耦
const trainerRegisterTimeout = 60 * time.Second

// AgentUseCase 智能体应用服务：校验 → 仓储 → 可选的训练服务旁路注册
type AgentUseCase struct {
	repo    repository.AgentRepository
	trainer TrainerClient // nil 表示未启用训练服务
	monitor *monitoring.Monitor
	logger  *zap.Logger
}

// NewAgentUseCase 创建智能体应用服务
func NewAgentUseCase(repo repository.AgentRepository, trainer TrainerClient, monitor *monitoring.Monitor, logger *zap.Logger) *AgentUseCase {
	return &AgentUseCase{
		repo:    repo,
		trainer: trainer,
		monitor: monitor,
		logger:  logger.With(zap.String("usecase", "agent")),
	}
}

// Create 校验并持久化新智能体。
// 训练服务注册是发后不管的旁路调用：结果只写日志，失败时 external_id 保持为空，
// 绝不阻塞也绝不失败主路径。
func (uc *AgentUseCase) Create(ctx context.Context, payload map[string]any) (*entity.Agent, error) {
	if violations := service.ValidateAgentCreate(payload); len(violations) > 0 {
		return nil, domainErrors.NewValidationError("validation failed", violations)
	}

	creatorID, _ := service.PayloadUint(payload, "creator_id")
	name, _ := payload["name"].(string)
	agent, err := entity.NewAgent(creatorID, strings.TrimSpace(name))
	if err != nil {
		return nil, domainErrors.NewInvalidInputError(err.Error())
	}
	applyOptionalFields(agent, payload)

	uc.monitor.IncDBOp()
	created, err := uc.repo.Create(ctx, agent)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return nil, err
	}

	uc.registerWithTrainer(created)

	uc.logger.Info("Agent created",
		zap.Uint64("agent_id", created.ID),
		zap.Uint64("creator_id", created.CreatorID),
	)
	return created, nil
}

// List 创建者的全部智能体；无记录时返回空列表而不是错误
func (uc *AgentUseCase) List(ctx context.Context, creatorID uint64) ([]*entity.Agent, error) {
	if creatorID == 0 {
		return nil, domainErrors.NewInvalidInputError("creator_id is required and must be a positive integer")
	}
	uc.monitor.IncDBOp()
	agents, err := uc.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return nil, err
	}
	return agents, nil
}

// Get 按标识+归属查找
func (uc *AgentUseCase) Get(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (*entity.Agent, error) {
	if creatorID == 0 {
		return nil, domainErrors.NewInvalidInputError("creator_id is required and must be a positive integer")
	}
	uc.monitor.IncDBOp()
	agent, err := uc.repo.GetByRef(ctx, ref, creatorID)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return nil, err
	}
	return agent, nil
}

// Update 校验 patch 里出现的字段后做允许列表更新
func (uc *AgentUseCase) Update(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error) {
	if creatorID == 0 {
		return nil, domainErrors.NewInvalidInputError("creator_id is required and must be a positive integer")
	}
	if violations := service.ValidateAgentUpdate(patch); len(violations) > 0 {
		return nil, domainErrors.NewValidationError("validation failed", violations)
	}

	uc.monitor.IncDBOp()
	updated, err := uc.repo.Update(ctx, ref, creatorID, patch)
	if err != nil {
		if !domainErrors.IsInvalidInput(err) {
			uc.monitor.IncDBOpFailed()
		}
		return nil, err
	}

	uc.logger.Info("Agent updated", zap.String("agent_ref", ref.String()))
	return updated, nil
}

// Delete 按标识+归属删除，返回被删主键
func (uc *AgentUseCase) Delete(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error) {
	if creatorID == 0 {
		return 0, domainErrors.NewInvalidInputError("creator_id is required and must be a positive integer")
	}
	uc.monitor.IncDBOp()
	id, err := uc.repo.Delete(ctx, ref, creatorID)
	if err != nil {
		uc.monitor.IncDBOpFailed()
		return 0, err
	}

	uc.logger.Info("Agent deleted", zap.Uint64("agent_id", id))
	return id, nil
}

// registerWithTrainer 后台注册，结果只记日志
func (uc *AgentUseCase) registerWithTrainer(agent *entity.Agent) {
	if uc.trainer == nil {
		return
	}

	snapshot := *agent
	safego.Go(uc.logger, "trainer-register", func() {
		ctx, cancel := context.WithTimeout(context.Background(), trainerRegisterTimeout)
		defer cancel()

		externalID, err := uc.trainer.Register(ctx, &snapshot)
		if err != nil {
			uc.monitor.IncTrainerFailure()
			uc.logger.Warn("Trainer registration failed, external_id stays empty",
				zap.Uint64("agent_id", snapshot.ID),
				zap.Error(err),
			)
			return
		}

		if err := uc.repo.SetExternalID(ctx, snapshot.ID, externalID); err != nil {
			uc.monitor.IncTrainerFailure()
			uc.logger.Warn("Failed to store trainer correlation id",
				zap.Uint64("agent_id", snapshot.ID),
				zap.String("external_id", externalID),
				zap.Error(err),
			)
			return
		}

		uc.monitor.IncTrainerRegister()
		uc.logger.Info("Agent registered with trainer",
			zap.Uint64("agent_id", snapshot.ID),
			zap.String("external_id", externalID),
		)
	})
}

// applyOptionalFields 把创建载荷里的可选字段落到实体上。
// 载荷已通过校验，这里的类型断言失败只意味着字段缺失。
func applyOptionalFields(agent *entity.Agent, payload map[string]any) {
	if v, ok := payload["description"].(string); ok {
		agent.Description = v
	}
	if v, ok := payload["avatar_url"].(string); ok {
		agent.AvatarURL = v
	}
	if v, ok := payload["model_name"].(string); ok {
		agent.ModelName = v
	}
	if v, ok := payload["temperature"].(float64); ok {
		agent.Temperature = v
	}
	if v, ok := payload["max_tokens"].(float64); ok {
		agent.MaxTokens = int(v)
	}
	if v, ok := payload["visibility"].(string); ok {
		agent.Visibility = entity.Visibility(v)
	}
	if v, ok := payload["role"].(string); ok {
		agent.Role = entity.Role(v)
	}
	if v, ok := payload["agent_type"].(string); ok {
		agent.AgentType = entity.AgentType(v)
	}
	if v, ok := payload["traits"]; ok {
		agent.Traits = toStringSlice(v)
	}
	if v, ok := payload["personality"].(map[string]any); ok {
		agent.Personality = v
	}
	if v, ok := payload["courses"]; ok {
		agent.Courses = toStringSlice(v)
	}
	if v, ok := payload["price_amount"].(float64); ok {
		agent.PriceAmount = v
	}
	if v, ok := payload["price_currency"].(string); ok {
		agent.PriceCurrency = v
	}
}

func toStringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
