package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds the CLI's adjustable defaults for the differencing
// algorithms and the in-place scheduler.
type Config struct {
	SeedLen  int    `json:"seed_len,omitempty"`
	TableLen int    `json:"table_size,omitempty"`
	MaxTable int    `json:"max_table,omitempty"`
	BufCap   int    `json:"buf_cap,omitempty"`
	UseSplay bool   `json:"use_splay,omitempty"`
	Policy   string `json:"policy,omitempty"`
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".bytediff.json"

var errPolicyInvalid = errors.New("policy must be \"constant\" or \"localmin\"")

// DefaultConfig returns the CLI's built-in defaults, mirroring
// bytediff.DefaultOptions plus the scheduler's default policy.
func DefaultConfig() Config {
	return Config{
		SeedLen:  16,
		BufCap:   256,
		UseSplay: false,
		Policy:   "constant",
	}
}

// getGlobalConfigPath returns $XDG_CONFIG_HOME/bytediff/config.json, or
// ~/.config/bytediff/config.json if XDG_CONFIG_HOME is unset. Returns ""
// if no home directory can be determined.
func getGlobalConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bytediff", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "bytediff", "config.json")
}

// LoadConfig loads configuration with the following precedence, highest
// wins: (1) built-in defaults, (2) global user config, (3) project config
// (.bytediff.json in workDir, or the file at explicitPath if non-empty).
// CLI flag overrides are applied by the caller after this returns, since
// pflag tracks which flags were explicitly set.
func LoadConfig(workDir, explicitPath string) (Config, error) {
	cfg := DefaultConfig()

	if globalPath := getGlobalConfigPath(); globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectPath := explicitPath
	mustExist := explicitPath != ""

	if projectPath == "" {
		projectPath = filepath.Join(workDir, ConfigFileName)
	} else if !filepath.IsAbs(projectPath) {
		projectPath = filepath.Join(workDir, projectPath)
	}

	projectCfg, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg = mergeConfig(cfg, projectCfg)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.SeedLen != 0 {
		base.SeedLen = overlay.SeedLen
	}

	if overlay.TableLen != 0 {
		base.TableLen = overlay.TableLen
	}

	if overlay.MaxTable != 0 {
		base.MaxTable = overlay.MaxTable
	}

	if overlay.BufCap != 0 {
		base.BufCap = overlay.BufCap
	}

	base.UseSplay = base.UseSplay || overlay.UseSplay

	if overlay.Policy != "" {
		base.Policy = overlay.Policy
	}

	return base
}

func validateConfig(cfg Config) error {
	switch strings.ToLower(cfg.Policy) {
	case "constant", "localmin":
		return nil
	default:
		return fmt.Errorf("%w: got %q", errPolicyInvalid, cfg.Policy)
	}
}

// FormatConfig returns cfg as formatted JSON, for "bytediff config" style
// introspection.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}
