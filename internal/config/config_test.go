// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// No t.Parallel: chdir and HOME manipulation are process-global.
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want defaults", path)
	}
	if cfg.PackPattern != "datapacks/*/*" || cfg.OutputDir != "dist" || cfg.BuildDir != "build" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	content := "pack_pattern: \"*packs/*/*\"\noutput_dir: out\nverbose: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if path != configPath {
		t.Errorf("resolved path = %q, want %q", path, configPath)
	}
	if cfg.PackPattern != "*packs/*/*" || cfg.OutputDir != "out" || !cfg.Verbose {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.BuildDir != "build" {
		t.Errorf("BuildDir = %q, want default", cfg.BuildDir)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load succeeded for missing explicit config")
	}
}

func TestLoad_LocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName),
		[]byte("build_dir: .pipeline\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if path != LocalConfigFileName {
		t.Errorf("resolved path = %q, want %q", path, LocalConfigFileName)
	}
	if cfg.BuildDir != ".pipeline" {
		t.Errorf("BuildDir = %q", cfg.BuildDir)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("pack_pattern: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(configPath); err == nil {
		t.Fatal("Load succeeded for malformed YAML")
	}
}
