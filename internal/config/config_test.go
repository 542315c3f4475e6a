package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"WG_CARGO", "WG_EDITION", "WG_TOOLCHAIN", "WG_INIT_GIT"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return dir
}

func TestLoad_defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cargo != "cargo" {
		t.Errorf("Cargo = %q, want cargo", cfg.Cargo)
	}
	if cfg.Edition != "2024" {
		t.Errorf("Edition = %q, want 2024", cfg.Edition)
	}
	if cfg.Toolchain != "" || cfg.InitGit {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_file(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("cargo = \"/opt/rust/bin/cargo\"\ntoolchain = \"stable\"\ninit_git = true\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cargo != "/opt/rust/bin/cargo" {
		t.Errorf("Cargo = %q", cfg.Cargo)
	}
	if cfg.Toolchain != "stable" || !cfg.InitGit {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Edition != "2024" {
		t.Errorf("Edition = %q, want default 2024", cfg.Edition)
	}
}

func TestLoad_defaultPathFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, AppName), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, AppName, FileName), []byte("edition = \"2021\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Edition != "2021" {
		t.Errorf("Edition = %q, want 2021", cfg.Edition)
	}
}

func TestLoad_envOverride(t *testing.T) {
	isolate(t)
	t.Setenv("WG_CARGO", "/tmp/fake-cargo")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cargo != "/tmp/fake-cargo" {
		t.Errorf("Cargo = %q, want env override", cfg.Cargo)
	}
}

func TestLoad_missingExplicit(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_malformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("cargo = \n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
