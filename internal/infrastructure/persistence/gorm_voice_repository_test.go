package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/nexlearn/agenthub/internal/infrastructure/persistence/models"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

func TestVoiceRepositoryCloneIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoiceRepository(db)
	ctx := context.Background()

	voice, existed, err := repo.Clone(ctx, 1, "voice-alpha")
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if existed {
		t.Error("first Clone() reported existed = true")
	}
	if voice.ID == 0 {
		t.Error("Clone() did not assign an id")
	}

	// 重复克隆幂等返回已有记录
	again, existed, err := repo.Clone(ctx, 1, "voice-alpha")
	if err != nil {
		t.Fatalf("second Clone() error = %v", err)
	}
	if !existed {
		t.Error("second Clone() reported existed = false")
	}
	if again.ID != voice.ID {
		t.Errorf("second Clone() id = %d, want %d", again.ID, voice.ID)
	}

	var count int64
	if err := db.Model(&models.UserVoiceModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want exactly 1", count)
	}
}

// 同一音色可以被不同用户各自保存
func TestVoiceRepositoryClonePerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoiceRepository(db)
	ctx := context.Background()

	if _, existed, err := repo.Clone(ctx, 1, "voice-alpha"); err != nil || existed {
		t.Fatalf("Clone() user 1 = existed %v, err %v", existed, err)
	}
	if _, existed, err := repo.Clone(ctx, 2, "voice-alpha"); err != nil || existed {
		t.Fatalf("Clone() user 2 = existed %v, err %v", existed, err)
	}
}

func TestVoiceRepositoryCloneInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoiceRepository(db)
	ctx := context.Background()

	if _, _, err := repo.Clone(ctx, 0, "voice-alpha"); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Clone() with zero user = %v, want INVALID_INPUT", err)
	}
	if _, _, err := repo.Clone(ctx, 1, ""); !domainErrors.IsInvalidInput(err) {
		t.Errorf("Clone() with empty voice = %v, want INVALID_INPUT", err)
	}
}

func TestVoiceRepositoryListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoiceRepository(db)
	ctx := context.Background()

	if _, _, err := repo.Clone(ctx, 1, "voice-old"); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, _, err := repo.Clone(ctx, 1, "voice-new"); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if _, _, err := repo.Clone(ctx, 2, "voice-other"); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	voices, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("len = %d, want 2", len(voices))
	}
	if voices[0].VoiceID != "voice-new" || voices[1].VoiceID != "voice-old" {
		t.Errorf("order = [%s %s], want newest first", voices[0].VoiceID, voices[1].VoiceID)
	}

	empty, err := repo.ListByUser(ctx, 99)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("voices = %v, want empty non-nil slice", empty)
	}
}

func TestVoiceRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoiceRepository(db)
	ctx := context.Background()

	if _, _, err := repo.Clone(ctx, 1, "voice-alpha"); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	if err := repo.Delete(ctx, 1, "voice-alpha"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, 1, "voice-alpha"); !domainErrors.IsNotFound(err) {
		t.Errorf("second Delete() = %v, want NOT_FOUND", err)
	}
	// 别的用户的记录不受影响
	if _, _, err := repo.Clone(ctx, 2, "voice-alpha"); err != nil {
		t.Fatalf("Clone() user 2 error = %v", err)
	}
	if err := repo.Delete(ctx, 1, "voice-alpha"); !domainErrors.IsNotFound(err) {
		t.Errorf("Delete() user 1 after user 2 clone = %v, want NOT_FOUND", err)
	}
}
