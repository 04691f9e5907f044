package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with missing file: %v", err)
	}

	if cfg.Storage.Type != "sqlite" {
		t.Errorf("storage.type = %q, want sqlite", cfg.Storage.Type)
	}
	if cfg.Storage.Key != "studyLogs" {
		t.Errorf("storage.key = %q, want studyLogs", cfg.Storage.Key)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Stats.Days != 7 {
		t.Errorf("stats.days = %d, want 7", cfg.Stats.Days)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  type: redis
  key: myLogs
redis:
  addr: 127.0.0.1:6380
  timeout: 1s
logging:
  level: debug
  format: json
stats:
  days: 14
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Type != "redis" || cfg.Storage.Key != "myLogs" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Redis.Addr != "127.0.0.1:6380" || cfg.Redis.Timeout != "1s" {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Stats.Days != 14 {
		t.Errorf("stats.days = %d, want 14", cfg.Stats.Days)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STUDYLOG_STORAGE_KEY", "envLogs")
	t.Setenv("STUDYLOG_LOGGING_LEVEL", "error")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Key != "envLogs" {
		t.Errorf("storage.key = %q, want envLogs", cfg.Storage.Key)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("logging.level = %q, want error", cfg.Logging.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown storage", "storage:\n  type: postgres\n"},
		{"empty key", "storage:\n  key: \"  \"\n"},
		{"bad redis timeout", "storage:\n  type: redis\nredis:\n  timeout: soon\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad days", "stats:\n  days: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
