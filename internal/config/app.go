// Package config loads the edit-guard app config and edits Claude Code settings files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauern/edit-guard/internal/constants"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls hook event logging for the standalone binaries
type LoggingConfig struct {
	Enabled  bool              `json:"enabled" yaml:"enabled" toml:"enabled"`
	Format   string            `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Rotation LogRotationConfig `json:"rotation" yaml:"rotation" toml:"rotation"`
}

// PluginConfig stores per-hook settings.
// A nil Enabled means default (enabled). If Enabled=false, the hook is disabled.
type PluginConfig struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// AppConfig is the edit-guard.{yml,yaml,toml,json} file
type AppConfig struct {
	Logging LoggingConfig           `json:"logging" yaml:"logging" toml:"logging"`
	Plugins map[string]PluginConfig `json:"plugins,omitempty" yaml:"plugins,omitempty" toml:"plugins,omitempty"`

	// Source is the file the config was loaded from, empty for defaults
	Source string `json:"-" yaml:"-" toml:"-"`
}

// DefaultAppConfig returns the config used when no file is present
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Logging: LoggingConfig{
			Enabled:  false,
			Format:   LoggingFormatJSONL,
			Rotation: DefaultLogRotationConfig(),
		},
		Plugins: map[string]PluginConfig{},
	}
}

// IsPluginEnabled returns true unless the hook is explicitly disabled.
func (c *AppConfig) IsPluginEnabled(key string) bool {
	if c == nil || c.Plugins == nil {
		return true
	}
	cfg, ok := c.Plugins[key]
	if !ok || cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// LoadAppConfig decodes path according to its extension.
// Keys absent from the file keep their default values.
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := DefaultAppConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v", path, err)
	}

	if !IsValidLoggingFormat(cfg.Logging.Format) {
		cfg.Logging.Format = LoggingFormatJSONL
	}
	if cfg.Plugins == nil {
		cfg.Plugins = map[string]PluginConfig{}
	}
	cfg.Source = path
	return cfg, nil
}

// FindAppConfig returns the first edit-guard config file under baseDir/.claude/hooks,
// trying extensions in constants.ConfigExtensions order.
func FindAppConfig(baseDir string) (string, bool) {
	hooksDir := constants.GetHooksDir(baseDir)
	for _, ext := range constants.ConfigExtensions {
		candidate := filepath.Join(hooksDir, constants.ConfigBaseName+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// LoadEffectiveAppConfig loads the project config, falling back to the global one.
// The first file found wins; files are not merged. Any failure yields defaults.
func LoadEffectiveAppConfig(projectDir, homeDir string) *AppConfig {
	for _, dir := range []string{projectDir, homeDir} {
		if dir == "" {
			continue
		}
		path, ok := FindAppConfig(dir)
		if !ok {
			continue
		}
		cfg, err := LoadAppConfig(path)
		if err != nil {
			return DefaultAppConfig()
		}
		return cfg
	}
	return DefaultAppConfig()
}

// LoadAppConfigFromEnvironment resolves the project directory from the working
// directory and the global one from the user's home.
func LoadAppConfigFromEnvironment() *AppConfig {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return LoadEffectiveAppConfig(cwd, home)
}
