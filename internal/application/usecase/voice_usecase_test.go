package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

type mockVoiceRepo struct {
	cloneFn  func(ctx context.Context, userID uint64, voiceID string) (*entity.UserVoice, bool, error)
	listFn   func(ctx context.Context, userID uint64) ([]*entity.UserVoice, error)
	deleteFn func(ctx context.Context, userID uint64, voiceID string) error

	cloneCalls int
}

func (m *mockVoiceRepo) Clone(ctx context.Context, userID uint64, voiceID string) (*entity.UserVoice, bool, error) {
	m.cloneCalls++
	if m.cloneFn != nil {
		return m.cloneFn(ctx, userID, voiceID)
	}
	return &entity.UserVoice{ID: 1, UserID: userID, VoiceID: voiceID}, false, nil
}

func (m *mockVoiceRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.UserVoice, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*entity.UserVoice{}, nil
}

func (m *mockVoiceRepo) Delete(ctx context.Context, userID uint64, voiceID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, voiceID)
	}
	return nil
}

func newVoiceUseCase(repo *mockVoiceRepo) *VoiceUseCase {
	logger := zap.NewNop()
	return NewVoiceUseCase(repo, monitoring.NewMonitor(logger), logger)
}

func TestVoiceUseCaseCloneGuards(t *testing.T) {
	repo := &mockVoiceRepo{}
	uc := newVoiceUseCase(repo)
	ctx := context.Background()

	if _, _, err := uc.Clone(ctx, 0, "voice-alpha"); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Clone() with zero user = %v, want INVALID_INPUT", err)
	}
	if _, _, err := uc.Clone(ctx, 1, ""); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Clone() with empty voice = %v, want INVALID_INPUT", err)
	}
	if repo.cloneCalls != 0 {
		t.Error("repository called despite invalid input")
	}
}

func TestVoiceUseCaseCloneReportsExisted(t *testing.T) {
	repo := &mockVoiceRepo{
		cloneFn: func(ctx context.Context, userID uint64, voiceID string) (*entity.UserVoice, bool, error) {
			return &entity.UserVoice{ID: 3, UserID: userID, VoiceID: voiceID}, true, nil
		},
	}
	uc := newVoiceUseCase(repo)

	voice, existed, err := uc.Clone(context.Background(), 1, "voice-alpha")
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if !existed {
		t.Error("existed = false, want true")
	}
	if voice.ID != 3 || voice.VoiceID != "voice-alpha" {
		t.Errorf("voice = %+v", voice)
	}
}

func TestVoiceUseCaseListGuardsAndPassThrough(t *testing.T) {
	uc := newVoiceUseCase(&mockVoiceRepo{})
	ctx := context.Background()

	if _, err := uc.List(ctx, 0); !domainErrors.IsInvalidInput(err) {
		t.Errorf("List(0) = %v, want INVALID_INPUT", err)
	}

	voices, err := uc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(voices) != 0 {
		t.Errorf("voices = %v, want empty", voices)
	}
}

func TestVoiceUseCaseDelete(t *testing.T) {
	repo := &mockVoiceRepo{
		deleteFn: func(ctx context.Context, userID uint64, voiceID string) error {
			return domainErrors.NewNotFoundError("voice not found")
		},
	}
	uc := newVoiceUseCase(repo)
	ctx := context.Background()

	if err := uc.Delete(ctx, 0, "voice-alpha"); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Delete() with zero user = %v, want INVALID_INPUT", err)
	}
	if err := uc.Delete(ctx, 1, ""); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Delete() with empty voice = %v, want INVALID_INPUT", err)
	}
	if err := uc.Delete(ctx, 1, "voice-alpha"); !domainErrors.IsNotFound(err) {
		t.Errorf("Delete() = %v, want NOT_FOUND", err)
	}
}
