// Package config holds the user-level FileStack configuration: rendering
// preferences, validation limits, and recently opened workspaces.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".filestack"
	configFile = "config.yaml"

	defaultPreviewTheme = "dark"
	defaultTabWidth     = 4

	maxRecentWorkspaces = 10
)

type Config struct {
	PreviewTheme      string   `yaml:"preview_theme"      json:"preview_theme"`
	TabWidth          int      `yaml:"tab_width"          json:"tab_width"`
	MaxFilesPerView   int      `yaml:"max_files_per_view" json:"max_files_per_view"`
	AllowedExtensions []string `yaml:"allowed_extensions" json:"allowed_extensions"`
	RecentWorkspaces  []string `yaml:"recent_workspaces"  json:"recent_workspaces"`

	home string `yaml:"-"`
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(homeDir, configDir, configFile)
}

// Load reads the config from homeDir, falling back to defaults when the
// file is missing or empty. A missing config is not an error.
func Load(homeDir string) (*Config, error) {
	cfg := &Config{home: homeDir}

	data, err := os.ReadFile(GetConfigPath(homeDir))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ensureDefaults()
			return cfg, nil
		}
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()

	switch cfg.PreviewTheme {
	case "dark", "light", "notty", "auto":
	default:
		return nil, &ConfigInitError{msg: "unknown preview theme " + cfg.PreviewTheme}
	}

	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.PreviewTheme == "" {
		cfg.PreviewTheme = defaultPreviewTheme
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	cfg.syncViper()
}

// syncViper mirrors the effective values into viper so cobra flag bindings
// observe them.
func (cfg *Config) syncViper() {
	viper.Set("preview_theme", cfg.PreviewTheme)
	viper.Set("tab_width", cfg.TabWidth)
	viper.Set("max_files_per_view", cfg.MaxFilesPerView)
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	path := GetConfigPath(cfg.home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RememberWorkspace records root as the most recently opened workspace,
// de-duplicating and keeping the list bounded.
func (cfg *Config) RememberWorkspace(root string) {
	recents := []string{root}
	for _, r := range cfg.RecentWorkspaces {
		if r != root && len(recents) < maxRecentWorkspaces {
			recents = append(recents, r)
		}
	}
	cfg.RecentWorkspaces = recents
}
