package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Codegen.RV64 {
		t.Error("Expected Codegen.RV64=true")
	}
	if cfg.Codegen.PCRelWindow != 1<<31 {
		t.Errorf("Expected PCRelWindow=2^31, got %d", cfg.Codegen.PCRelWindow)
	}

	if cfg.Timer.TicksPerSecond != 1_000_000 {
		t.Errorf("Expected TicksPerSecond=1000000, got %d", cfg.Timer.TicksPerSecond)
	}
	if cfg.Timer.FixDutyCycleFormula {
		t.Error("Expected FixDutyCycleFormula=false by default")
	}

	if cfg.API.ListenAddr == "" {
		t.Error("Expected non-empty default API.ListenAddr")
	}

	if cfg.TUI.BytesPerLine != 16 {
		t.Errorf("Expected TUI.BytesPerLine=16, got %d", cfg.TUI.BytesPerLine)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "riscv-stm32-core" && path != "config.toml" {
			t.Errorf("Expected path in riscv-stm32-core directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Codegen.RV64 = false
	cfg.Timer.TicksPerSecond = 2_000_000
	cfg.Timer.FixDutyCycleFormula = true
	cfg.API.ListenAddr = "0.0.0.0:9000"
	cfg.TUI.ColorOutput = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Codegen.RV64 {
		t.Error("Expected Codegen.RV64=false")
	}
	if loaded.Timer.TicksPerSecond != 2_000_000 {
		t.Errorf("Expected TicksPerSecond=2000000, got %d", loaded.Timer.TicksPerSecond)
	}
	if !loaded.Timer.FixDutyCycleFormula {
		t.Error("Expected FixDutyCycleFormula=true")
	}
	if loaded.API.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("Expected ListenAddr=0.0.0.0:9000, got %s", loaded.API.ListenAddr)
	}
	if loaded.TUI.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Timer.TicksPerSecond != 1_000_000 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[timer]
ticks_per_second = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
