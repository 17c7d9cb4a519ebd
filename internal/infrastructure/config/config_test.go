package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// 确保不被开发机上的全局配置影响
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8091 {
		t.Errorf("Server.Port = %d, want 8091", cfg.Server.Port)
	}
	if cfg.Server.Mode != "local" {
		t.Errorf("Server.Mode = %q, want local", cfg.Server.Mode)
	}
	if cfg.Database.Type != "sqlite" || cfg.Database.DSN != "agenthub.db" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Trainer.Enabled {
		t.Error("Trainer.Enabled = true, want disabled by default")
	}
	if cfg.Trainer.MaxRetries != 3 || cfg.Trainer.RetryWait != 2*time.Second {
		t.Errorf("Trainer = %+v", cfg.Trainer)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want enabled by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGENTHUB_SERVER_PORT", "9300")
	t.Setenv("AGENTHUB_DATABASE_TYPE", "postgres")
	t.Setenv("AGENTHUB_TRAINER_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9300 {
		t.Errorf("Server.Port = %d, want 9300 from env", cfg.Server.Port)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("Database.Type = %q, want postgres from env", cfg.Database.Type)
	}
	if !cfg.Trainer.Enabled {
		t.Error("Trainer.Enabled = false, env override ignored")
	}
}
