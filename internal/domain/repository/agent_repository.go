package repository

import (
	"context"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/valueobject"
)

// AgentRepository 智能体仓储接口（遵循依赖倒置原则）
// 定义在领域层，实现在基础设施层
type AgentRepository interface {
	// Create 持久化新智能体并返回完整记录（含分配的主键）
	Create(ctx context.Context, agent *entity.Agent) (*entity.Agent, error)

	// ListByCreator 返回创建者的全部智能体，新建在前；无记录时返回空列表
	ListByCreator(ctx context.Context, creatorID uint64) ([]*entity.Agent, error)

	// GetByRef 按标识+归属查找；记录不存在与归属不符统一返回 NotFound
	GetByRef(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (*entity.Agent, error)

	// Update 按允许列表过滤 patch 后做条件更新，返回更新后的记录。
	// 过滤后为空 → INVALID_INPUT；无行受影响 → NOT_FOUND。
	Update(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error)

	// SetExternalID 回填训练服务分配的关联 UUID
	SetExternalID(ctx context.Context, agentID uint64, externalID string) error

	// Delete 按标识+归属删除；无行受影响 → NOT_FOUND。返回被删记录的主键。
	Delete(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error)
}
