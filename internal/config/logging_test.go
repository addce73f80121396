package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogFileCreatesFile(t *testing.T) {
	dir := t.TempDir()

	f, err := SetupLogFile(dir, 3)
	if err != nil {
		t.Fatalf("SetupLogFile: %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(f.Name()); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestCleanupOldLogsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"server-2026-01-01T00-00-00.log",
		"server-2026-01-02T00-00-00.log",
		"server-2026-01-03T00-00-00.log",
		"server-2026-01-04T00-00-00.log",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	if err := cleanupOldLogs(dir, 2); err != nil {
		t.Fatalf("cleanupOldLogs: %v", err)
	}

	remaining, _ := filepath.Glob(filepath.Join(dir, "server-*.log"))
	if len(remaining) != 2 {
		t.Fatalf("expected 2 files left, got %d", len(remaining))
	}
	for _, old := range names[:2] {
		if _, err := os.Stat(filepath.Join(dir, old)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", old)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("AUTOSAVE_INTERVAL", "not-a-duration")

	cfg := Load()

	if cfg.TablePrefix != "test_" {
		t.Errorf("expected test_ prefix, got %q", cfg.TablePrefix)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("expected sqlite backend outside prod, got %q", cfg.StoreBackend)
	}
	if cfg.AutoSaveInterval.String() != "1m0s" {
		t.Errorf("expected invalid duration to fall back to 1m, got %s", cfg.AutoSaveInterval)
	}
	if cfg.CountFloor != "clamp" {
		t.Errorf("expected clamp count floor, got %q", cfg.CountFloor)
	}
}
