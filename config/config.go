package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the toolchain's configuration.
type Config struct {
	// Codegen settings control the RISC-V encoder.
	Codegen struct {
		RV64        bool `toml:"rv64"`         // target RV64I+M instead of RV32I+M
		PCRelWindow int64 `toml:"pcrel_window"` // +/- bytes for AUIPC+CALL eligibility
		EmitDebugFrame bool `toml:"emit_debug_frame"`
	} `toml:"codegen"`

	// Timer settings seed a simulated STM32F4 general-purpose timer.
	Timer struct {
		TicksPerSecond      uint64 `toml:"ticks_per_second"`
		FixDutyCycleFormula bool   `toml:"fix_duty_cycle_formula"`
	} `toml:"timer"`

	// API settings control the optional websocket event server.
	API struct {
		ListenAddr      string `toml:"listen_addr"`
		BroadcastBuffer int    `toml:"broadcast_buffer"`
	} `toml:"api"`

	// TUI settings control the tview/tcell live viewer.
	TUI struct {
		ColorOutput  bool `toml:"color_output"`
		RefreshMS    int  `toml:"refresh_ms"`
		BytesPerLine int  `toml:"bytes_per_line"`
	} `toml:"tui"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Codegen.RV64 = true
	cfg.Codegen.PCRelWindow = 1 << 31
	cfg.Codegen.EmitDebugFrame = true

	cfg.Timer.TicksPerSecond = 1_000_000
	cfg.Timer.FixDutyCycleFormula = false

	cfg.API.ListenAddr = "127.0.0.1:8089"
	cfg.API.BroadcastBuffer = 64

	cfg.TUI.ColorOutput = true
	cfg.TUI.RefreshMS = 100
	cfg.TUI.BytesPerLine = 16

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "riscv-stm32-core")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "riscv-stm32-core")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "riscv-stm32-core", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "riscv-stm32-core", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// is not an error: the defaults are returned unchanged.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
