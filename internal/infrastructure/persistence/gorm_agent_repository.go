package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/repository"
	"github.com/nexlearn/agenthub/internal/domain/valueobject"
	"github.com/nexlearn/agenthub/internal/infrastructure/persistence/models"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// 缺行与归属不符刻意用同一条消息，避免向非属主泄露记录是否存在
const msgAgentNotFound = "agent not found or access denied"

// GormAgentRepository GORM 实现的智能体仓储
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository 创建 GORM 智能体仓储
func NewGormAgentRepository(db *gorm.DB) repository.AgentRepository {
	return &GormAgentRepository{
		db: db,
	}
}

// Create 持久化新智能体
func (r *GormAgentRepository) Create(ctx context.Context, agent *entity.Agent) (*entity.Agent, error) {
	model, err := toModel(agent)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateDBError("failed to create agent", err)
	}

	return toEntity(model), nil
}

// agentRow 列表查询的扫描目标：智能体列 + 左联接出的创建者身份列
type agentRow struct {
	models.AgentModel
	CreatorPublicID string
	CreatorName     string
	CreatorEmail    string
}

// ListByCreator 创建者的全部智能体，新建在前
func (r *GormAgentRepository) ListByCreator(ctx context.Context, creatorID uint64) ([]*entity.Agent, error) {
	var rows []agentRow
	err := r.db.WithContext(ctx).
		Table("agents").
		Select("agents.*, users.public_id AS creator_public_id, users.name AS creator_name, users.email AS creator_email").
		Joins("LEFT JOIN users ON users.id = agents.creator_id").
		Where("agents.creator_id = ?", creatorID).
		Order("agents.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateDBError("failed to list agents", err)
	}

	agents := make([]*entity.Agent, 0, len(rows))
	for i := range rows {
		agent := toEntity(&rows[i].AgentModel)
		if rows[i].CreatorPublicID != "" || rows[i].CreatorName != "" || rows[i].CreatorEmail != "" {
			agent.Creator = &entity.CreatorInfo{
				PublicID: rows[i].CreatorPublicID,
				Name:     rows[i].CreatorName,
				Email:    rows[i].CreatorEmail,
			}
		}
		agents = append(agents, agent)
	}

	return agents, nil
}

// GetByRef 按标识+归属查找
func (r *GormAgentRepository) GetByRef(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (*entity.Agent, error) {
	var model models.AgentModel
	query := r.scopeByRef(r.db.WithContext(ctx), ref).Where("creator_id = ?", creatorID)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError(msgAgentNotFound)
		}
		return nil, translateDBError("failed to find agent", err)
	}

	return toEntity(&model), nil
}

// Update 条件更新：单条语句同时校验标识与归属，受影响行数为零即视为不存在。
// 先查再改的两次往返会留下竞态窗口，这里不做。
func (r *GormAgentRepository) Update(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error) {
	updates, err := buildAgentUpdates(patch)
	if err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.scopeByRef(r.db.WithContext(ctx).Model(&models.AgentModel{}), ref).
		Where("creator_id = ?", creatorID).
		Updates(updates)
	if result.Error != nil {
		return nil, translateDBError("failed to update agent", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domainErrors.NewNotFoundError(msgAgentNotFound)
	}

	return r.GetByRef(ctx, ref, creatorID)
}

// SetExternalID 回填训练服务分配的关联 UUID
func (r *GormAgentRepository) SetExternalID(ctx context.Context, agentID uint64, externalID string) error {
	result := r.db.WithContext(ctx).Model(&models.AgentModel{}).
		Where("id = ?", agentID).
		Update("external_id", externalID)
	if result.Error != nil {
		return translateDBError("failed to set external id", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.NewNotFoundError(msgAgentNotFound)
	}
	return nil
}

// Delete 条件删除，RETURNING 拿回被删主键，仍是单条语句
func (r *GormAgentRepository) Delete(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error) {
	var deleted []models.AgentModel
	result := r.scopeByRef(
		r.db.WithContext(ctx).Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}),
		ref,
	).Where("creator_id = ?", creatorID).Delete(&deleted)
	if result.Error != nil {
		return 0, translateDBError("failed to delete agent", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, domainErrors.NewNotFoundError(msgAgentNotFound)
	}
	if len(deleted) > 0 {
		return deleted[0].ID, nil
	}
	// 方言不支持 RETURNING 时按数字标识兜底
	return ref.Numeric(), nil
}

// scopeByRef 按标识形态选择查询条件
func (r *GormAgentRepository) scopeByRef(tx *gorm.DB, ref valueobject.AgentRef) *gorm.DB {
	if ref.Kind() == valueobject.RefExternal {
		return tx.Where("external_id = ?", ref.External())
	}
	return tx.Where("id = ?", ref.Numeric())
}

// 转换方法

func toModel(agent *entity.Agent) (*models.AgentModel, error) {
	traits, err := marshalJSONField(agent.Traits)
	if err != nil {
		return nil, domainErrors.NewInvalidInputError("traits is not serializable")
	}
	personality, err := marshalJSONField(agent.Personality)
	if err != nil {
		return nil, domainErrors.NewInvalidInputError("personality is not serializable")
	}
	courses, err := marshalJSONField(agent.Courses)
	if err != nil {
		return nil, domainErrors.NewInvalidInputError("courses is not serializable")
	}

	return &models.AgentModel{
		ID:            agent.ID,
		ExternalID:    agent.ExternalID,
		CreatorID:     agent.CreatorID,
		Name:          agent.Name,
		Description:   agent.Description,
		AvatarURL:     agent.AvatarURL,
		ModelName:     agent.ModelName,
		Temperature:   agent.Temperature,
		MaxTokens:     agent.MaxTokens,
		Visibility:    string(agent.Visibility),
		Role:          string(agent.Role),
		AgentType:     string(agent.AgentType),
		Traits:        traits,
		Personality:   personality,
		Courses:       courses,
		PriceAmount:   agent.PriceAmount,
		PriceCurrency: agent.PriceCurrency,
		CreatedAt:     agent.CreatedAt,
		UpdatedAt:     agent.UpdatedAt,
	}, nil
}

func toEntity(model *models.AgentModel) *entity.Agent {
	agent := &entity.Agent{
		ID:            model.ID,
		ExternalID:    model.ExternalID,
		CreatorID:     model.CreatorID,
		Name:          model.Name,
		Description:   model.Description,
		AvatarURL:     model.AvatarURL,
		ModelName:     model.ModelName,
		Temperature:   model.Temperature,
		MaxTokens:     model.MaxTokens,
		Visibility:    entity.Visibility(model.Visibility),
		Role:          entity.Role(model.Role),
		AgentType:     entity.AgentType(model.AgentType),
		PriceAmount:   model.PriceAmount,
		PriceCurrency: model.PriceCurrency,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}

	if len(model.Traits) > 0 {
		_ = json.Unmarshal(model.Traits, &agent.Traits)
	}
	if len(model.Personality) > 0 {
		_ = json.Unmarshal(model.Personality, &agent.Personality)
	}
	if len(model.Courses) > 0 {
		_ = json.Unmarshal(model.Courses, &agent.Courses)
	}

	return agent
}

func marshalJSONField(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
