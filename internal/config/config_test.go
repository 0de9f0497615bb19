package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, "source:\n  addr: 127.0.0.1:6379\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Command.MaxElementsPerCommand != 1000 {
		t.Fatalf("got %d, want 1000", cfg.Command.MaxElementsPerCommand)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("got %q, want info", cfg.Log.Level)
	}
}

func TestLoadMissingSourceAddrFails(t *testing.T) {
	path := writeTempConfig(t, "log:\n  level: info\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeTempConfig(t, "source:\n  addr: 127.0.0.1:6379\nlog:\n  level: loud\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadParsesNestedFields(t *testing.T) {
	path := writeTempConfig(t, `
source:
  addr: 10.0.0.1:6379
  password: secret
replay:
  addr: 10.0.0.2:6379
  db: 3
rateLimit:
  bytesPerSec: 1048576
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Password != "secret" || cfg.Replay.DB != 3 || cfg.RateLimit.BytesPerSec != 1048576 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
