package entity

import (
	"errors"
	"testing"
)

func TestNewAgentDefaults(t *testing.T) {
	agent, err := NewAgent(1, "course helper")
	if err != nil {
		t.Fatalf("NewAgent() error = %v", err)
	}

	if agent.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", agent.Temperature)
	}
	if agent.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", agent.MaxTokens)
	}
	if agent.Visibility != VisibilityPrivate {
		t.Errorf("Visibility = %s, want private", agent.Visibility)
	}
	if agent.Role != RoleFree {
		t.Errorf("Role = %s, want free", agent.Role)
	}
	if agent.AgentType != AgentTypeInstructor {
		t.Errorf("AgentType = %s, want instructor", agent.AgentType)
	}
	if agent.CreatedAt.IsZero() || agent.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if agent.ExternalID != nil {
		t.Error("ExternalID must start empty")
	}
}

func TestNewAgentRejectsInvalid(t *testing.T) {
	if _, err := NewAgent(0, "name"); !errors.Is(err, ErrInvalidCreatorID) {
		t.Errorf("NewAgent(0, name) = %v, want ErrInvalidCreatorID", err)
	}
	if _, err := NewAgent(1, ""); !errors.Is(err, ErrInvalidAgentName) {
		t.Errorf("NewAgent(1, \"\") = %v, want ErrInvalidAgentName", err)
	}
}

func TestNewUserVoice(t *testing.T) {
	voice, err := NewUserVoice(1, "voice-alpha")
	if err != nil {
		t.Fatalf("NewUserVoice() error = %v", err)
	}
	if voice.UserID != 1 || voice.VoiceID != "voice-alpha" {
		t.Errorf("voice = %+v", voice)
	}
	if voice.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if _, err := NewUserVoice(0, "voice-alpha"); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("NewUserVoice(0, ...) = %v, want ErrInvalidUserID", err)
	}
	if _, err := NewUserVoice(1, ""); !errors.Is(err, ErrInvalidVoiceID) {
		t.Errorf("NewUserVoice(1, \"\") = %v, want ErrInvalidVoiceID", err)
	}
}

func TestEnumValidity(t *testing.T) {
	for _, v := range VisibilityValues() {
		if !Visibility(v).Valid() {
			t.Errorf("Visibility(%q).Valid() = false", v)
		}
	}
	for _, r := range RoleValues() {
		if !Role(r).Valid() {
			t.Errorf("Role(%q).Valid() = false", r)
		}
	}
	for _, a := range AgentTypeValues() {
		if !AgentType(a).Valid() {
			t.Errorf("AgentType(%q).Valid() = false", a)
		}
	}

	if Visibility("everyone").Valid() || Role("admin").Valid() || AgentType("robot").Valid() {
		t.Error("unknown enum values reported valid")
	}
}
