package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/domain/valueobject"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// mockAgentRepo 手写仓储桩，按需覆盖各方法
type mockAgentRepo struct {
	createFn      func(ctx context.Context, agent *entity.Agent) (*entity.Agent, error)
	listFn        func(ctx context.Context, creatorID uint64) ([]*entity.Agent, error)
	getFn         func(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (*entity.Agent, error)
	updateFn      func(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error)
	setExternalFn func(ctx context.Context, agentID uint64, externalID string) error
	deleteFn      func(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error)

	createCalls      int32
	setExternalCalls int32
}

func (m *mockAgentRepo) Create(ctx context.Context, agent *entity.Agent) (*entity.Agent, error) {
	atomic.AddInt32(&m.createCalls, 1)
	if m.createFn != nil {
		return m.createFn(ctx, agent)
	}
	created := *agent
	created.ID = 1
	return &created, nil
}

func (m *mockAgentRepo) ListByCreator(ctx context.Context, creatorID uint64) ([]*entity.Agent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, creatorID)
	}
	return []*entity.Agent{}, nil
}

func (m *mockAgentRepo) GetByRef(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (*entity.Agent, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ref, creatorID)
	}
	return nil, domainErrors.NewNotFoundError("agent not found or access denied")
}

func (m *mockAgentRepo) Update(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ref, creatorID, patch)
	}
	return nil, domainErrors.NewNotFoundError("agent not found or access denied")
}

func (m *mockAgentRepo) SetExternalID(ctx context.Context, agentID uint64, externalID string) error {
	atomic.AddInt32(&m.setExternalCalls, 1)
	if m.setExternalFn != nil {
		return m.setExternalFn(ctx, agentID, externalID)
	}
	return nil
}

func (m *mockAgentRepo) Delete(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ref, creatorID)
	}
	return 0, domainErrors.NewNotFoundError("agent not found or access denied")
}

// mockTrainer 训练服务桩
type mockTrainer struct {
	registerFn func(ctx context.Context, agent *entity.Agent) (string, error)
	called     chan *entity.Agent
}

func (m *mockTrainer) Register(ctx context.Context, agent *entity.Agent) (string, error) {
	if m.called != nil {
		m.called <- agent
	}
	if m.registerFn != nil {
		return m.registerFn(ctx, agent)
	}
	return "", errors.New("not configured")
}

func newAgentUseCase(repo *mockAgentRepo, trainer TrainerClient) *AgentUseCase {
	logger := zap.NewNop()
	return NewAgentUseCase(repo, trainer, monitoring.NewMonitor(logger), logger)
}

func validCreatePayload() map[string]any {
	return map[string]any{
		"creator_id": float64(1),
		"name":       "course helper",
	}
}

func TestAgentUseCaseCreateValidationFails(t *testing.T) {
	repo := &mockAgentRepo{}
	uc := newAgentUseCase(repo, nil)

	_, err := uc.Create(context.Background(), map[string]any{"creator_id": float64(1)})
	if !domainErrors.IsInvalidInput(err) {
		t.Fatalf("Create() = %v, want INVALID_INPUT", err)
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) || len(appErr.Violations) == 0 {
		t.Errorf("validation error carries no violations: %v", err)
	}
	if atomic.LoadInt32(&repo.createCalls) != 0 {
		t.Error("repository called despite validation failure")
	}
}

func TestAgentUseCaseCreateWithoutTrainer(t *testing.T) {
	repo := &mockAgentRepo{}
	uc := newAgentUseCase(repo, nil)

	created, err := uc.Create(context.Background(), validCreatePayload())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}
	if created.ExternalID != nil {
		t.Errorf("ExternalID = %v, want nil with trainer disabled", *created.ExternalID)
	}

	// 未启用训练服务时不应出现回填调用
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&repo.setExternalCalls) != 0 {
		t.Error("SetExternalID called with trainer disabled")
	}
}

func TestAgentUseCaseCreateAppliesOptionalFields(t *testing.T) {
	var captured *entity.Agent
	repo := &mockAgentRepo{
		createFn: func(ctx context.Context, agent *entity.Agent) (*entity.Agent, error) {
			captured = agent
			created := *agent
			created.ID = 7
			return &created, nil
		},
	}
	uc := newAgentUseCase(repo, nil)

	payload := validCreatePayload()
	payload["name"] = "  padded name  "
	payload["description"] = "helps with courses"
	payload["temperature"] = 1.2
	payload["max_tokens"] = float64(512)
	payload["visibility"] = "campus"
	payload["agent_type"] = "it_support"
	payload["traits"] = []any{"calm", "direct"}
	payload["personality"] = map[string]any{"humor": "dry"}

	if _, err := uc.Create(context.Background(), payload); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured == nil {
		t.Fatal("repository never received the agent")
	}
	if captured.Name != "padded name" {
		t.Errorf("Name = %q, want trimmed", captured.Name)
	}
	if captured.Description != "helps with courses" {
		t.Errorf("Description = %q", captured.Description)
	}
	if captured.Temperature != 1.2 || captured.MaxTokens != 512 {
		t.Errorf("model config = %v/%d", captured.Temperature, captured.MaxTokens)
	}
	if captured.Visibility != entity.VisibilityCampus || captured.AgentType != entity.AgentTypeITSupport {
		t.Errorf("enums = %s/%s", captured.Visibility, captured.AgentType)
	}
	if len(captured.Traits) != 2 || captured.Traits[1] != "direct" {
		t.Errorf("Traits = %v", captured.Traits)
	}
	if captured.Personality["humor"] != "dry" {
		t.Errorf("Personality = %v", captured.Personality)
	}
}

func TestAgentUseCaseCreateRegistersWithTrainer(t *testing.T) {
	type setCall struct {
		agentID    uint64
		externalID string
	}
	stored := make(chan setCall, 1)
	repo := &mockAgentRepo{
		setExternalFn: func(ctx context.Context, agentID uint64, externalID string) error {
			stored <- setCall{agentID, externalID}
			return nil
		},
	}
	trainer := &mockTrainer{
		registerFn: func(ctx context.Context, agent *entity.Agent) (string, error) {
			return "3f2504e0-4f89-41d3-9a0c-0305e82c3301", nil
		},
	}
	uc := newAgentUseCase(repo, trainer)

	created, err := uc.Create(context.Background(), validCreatePayload())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// 主路径立即返回，关联 UUID 由后台回填
	if created.ExternalID != nil {
		t.Error("ExternalID set synchronously, registration must be a side call")
	}

	select {
	case call := <-stored:
		if call.agentID != created.ID {
			t.Errorf("SetExternalID agent = %d, want %d", call.agentID, created.ID)
		}
		if call.externalID != "3f2504e0-4f89-41d3-9a0c-0305e82c3301" {
			t.Errorf("externalID = %q", call.externalID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("trainer correlation id never stored")
	}
}

func TestAgentUseCaseCreateSurvivesTrainerFailure(t *testing.T) {
	registered := make(chan *entity.Agent, 1)
	repo := &mockAgentRepo{}
	trainer := &mockTrainer{
		called: registered,
		registerFn: func(ctx context.Context, agent *entity.Agent) (string, error) {
			return "", errors.New("trainer unreachable")
		},
	}
	uc := newAgentUseCase(repo, trainer)

	created, err := uc.Create(context.Background(), validCreatePayload())
	if err != nil {
		t.Fatalf("Create() error = %v, trainer failure must not fail the main path", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("trainer was never invoked")
	}
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&repo.setExternalCalls) != 0 {
		t.Error("SetExternalID called after failed registration")
	}
}

func TestAgentUseCaseRequiresCreator(t *testing.T) {
	uc := newAgentUseCase(&mockAgentRepo{}, nil)
	ctx := context.Background()
	ref := valueobject.NumericRef(1)

	if _, err := uc.List(ctx, 0); !domainErrors.IsInvalidInput(err) {
		t.Errorf("List(0) = %v, want INVALID_INPUT", err)
	}
	if _, err := uc.Get(ctx, ref, 0); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Get(0) = %v, want INVALID_INPUT", err)
	}
	if _, err := uc.Update(ctx, ref, 0, map[string]any{"name": "x"}); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Update(0) = %v, want INVALID_INPUT", err)
	}
	if _, err := uc.Delete(ctx, ref, 0); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Delete(0) = %v, want INVALID_INPUT", err)
	}
}

func TestAgentUseCaseUpdateValidatesPatch(t *testing.T) {
	called := false
	repo := &mockAgentRepo{
		updateFn: func(ctx context.Context, ref valueobject.AgentRef, creatorID uint64, patch map[string]any) (*entity.Agent, error) {
			called = true
			return nil, nil
		},
	}
	uc := newAgentUseCase(repo, nil)

	_, err := uc.Update(context.Background(), valueobject.NumericRef(1), 1, map[string]any{"temperature": float64(9)})
	if !domainErrors.IsInvalidInput(err) {
		t.Fatalf("Update() = %v, want INVALID_INPUT", err)
	}
	if called {
		t.Error("repository called despite validation failure")
	}
}

func TestAgentUseCaseDelete(t *testing.T) {
	repo := &mockAgentRepo{
		deleteFn: func(ctx context.Context, ref valueobject.AgentRef, creatorID uint64) (uint64, error) {
			return ref.Numeric(), nil
		},
	}
	uc := newAgentUseCase(repo, nil)

	id, err := uc.Delete(context.Background(), valueobject.NumericRef(42), 1)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if id != 42 {
		t.Errorf("Delete() = %d, want 42", id)
	}
}

func TestAgentUseCasePassesThroughRepoErrors(t *testing.T) {
	uc := newAgentUseCase(&mockAgentRepo{}, nil)
	ctx := context.Background()

	if _, err := uc.Get(ctx, valueobject.NumericRef(1), 1); !domainErrors.IsNotFound(err) {
		t.Errorf("Get() = %v, want NOT_FOUND", err)
	}
	if _, err := uc.Delete(ctx, valueobject.NumericRef(1), 1); !domainErrors.IsNotFound(err) {
		t.Errorf("Delete() = %v, want NOT_FOUND", err)
	}
}
