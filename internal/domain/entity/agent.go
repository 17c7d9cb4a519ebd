package entity

import (
	"time"
)

// Agent 智能体聚合根
// 一个智能体属于且仅属于一个创建者（creator），所有变更都要求归属匹配。
type Agent struct {
	ID         uint64  `json:"id"`
	ExternalID *string `json:"external_id,omitempty"` // 训练服务返回的关联 UUID，注册失败时为空
	CreatorID  uint64  `json:"creator_id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`

	// 模型配置
	ModelName   string  `json:"model_name,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	Visibility Visibility `json:"visibility"`
	Role       Role       `json:"role"`
	AgentType  AgentType  `json:"agent_type"`

	// JSON 值字段
	Traits      []string       `json:"traits,omitempty"`
	Personality map[string]any `json:"personality,omitempty"`
	Courses     []string       `json:"courses,omitempty"`

	// 付费信息
	PriceAmount   float64 `json:"price_amount,omitempty"`
	PriceCurrency string  `json:"price_currency,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Creator 列表查询时左联接出的创建者公开信息，可能缺失
	Creator *CreatorInfo `json:"creator,omitempty"`
}

// CreatorInfo 创建者公开身份子集
type CreatorInfo struct {
	PublicID string `json:"public_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NewAgent 创建新的智能体（工厂方法）
// 枚举字段的默认值在这里统一给定，后续校验只需要检查取值合法性。
func NewAgent(creatorID uint64, name string) (*Agent, error) {
	if creatorID == 0 {
		return nil, ErrInvalidCreatorID
	}
	if name == "" {
		return nil, ErrInvalidAgentName
	}

	now := time.Now()
	return &Agent{
		CreatorID:   creatorID,
		Name:        name,
		Temperature: 0.7,
		MaxTokens:   2048,
		Visibility:  VisibilityPrivate,
		Role:        RoleFree,
		AgentType:   AgentTypeInstructor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
