package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"placeviz/internal/domain"
)

// Gender comparison scopes.
const (
	// ScopeSelection compares the testimonies chosen by the selector.
	ScopeSelection = "selection"
	// ScopeFiltered compares every testimony left after filtering.
	ScopeFiltered = "filtered"
)

// DatasetConfig selects the dataset source: "jsonl", "csv" or "sqlite".
// An empty type is picked from the file extension.
type DatasetConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// DashboardConfig holds the initial control values and pipeline switches.
type DashboardConfig struct {
	Mode        string `yaml:"mode"`
	Category    string `yaml:"category"`
	TopN        int    `yaml:"top_n"`
	GenderScope string `yaml:"gender_scope"`
}

// CloudConfig configures word cloud rendering.
type CloudConfig struct {
	MaxWords    int `yaml:"max_words"`
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MinFontSize int `yaml:"min_font_size"`
	MaxFontSize int `yaml:"max_font_size"`
}

// VennConfig configures Venn diagram rendering.
type VennConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Venn      VennConfig      `yaml:"venn"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./placeviz.yaml first, then ~/.config/placeviz/config.yaml.
// If neither exists, it returns defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "placeviz.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	return cfg, "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

// DefaultUserConfigPath is ~/.config/placeviz/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "placeviz", "config.yaml"), nil
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if _, err := domain.ParseMode(c.Dashboard.Mode); err != nil {
		return err
	}
	if _, err := domain.ParseCategory(c.Dashboard.Category); err != nil {
		return err
	}
	if c.Dashboard.TopN < domain.MinTopN || c.Dashboard.TopN > domain.MaxTopN {
		return fmt.Errorf("dashboard.top_n: %w: got %d", domain.ErrTopNRange, c.Dashboard.TopN)
	}
	if c.Cloud.MinFontSize > c.Cloud.MaxFontSize {
		return fmt.Errorf("cloud.min_font_size %d is above cloud.max_font_size %d", c.Cloud.MinFontSize, c.Cloud.MaxFontSize)
	}
	switch c.Dataset.Type {
	case "", "jsonl", "csv", "sqlite":
	default:
		return fmt.Errorf("unknown dataset type %q", c.Dataset.Type)
	}
	switch c.Dashboard.GenderScope {
	case ScopeSelection, ScopeFiltered:
	default:
		return errors.New("dashboard.gender_scope must be \"selection\" or \"filtered\"")
	}
	return nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Dataset: DatasetConfig{Path: "data/data_counts.jsonl"},
		Dashboard: DashboardConfig{
			Mode:        string(domain.ModeTestimony),
			Category:    string(domain.Building),
			TopN:        domain.MinTopN,
			GenderScope: ScopeSelection,
		},
		Cloud: CloudConfig{MaxWords: 200, Width: 800, Height: 400, MinFontSize: 8, MaxFontSize: 64},
		Venn:  VennConfig{Width: 800, Height: 600},
		Log:   LogConfig{Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = def.Dataset.Path
	}
	if cfg.Dashboard.Mode == "" {
		cfg.Dashboard.Mode = def.Dashboard.Mode
	}
	if cfg.Dashboard.Category == "" {
		cfg.Dashboard.Category = def.Dashboard.Category
	}
	if cfg.Dashboard.TopN == 0 {
		cfg.Dashboard.TopN = def.Dashboard.TopN
	}
	if cfg.Dashboard.GenderScope == "" {
		cfg.Dashboard.GenderScope = def.Dashboard.GenderScope
	}
	if cfg.Cloud.MaxWords == 0 {
		cfg.Cloud.MaxWords = def.Cloud.MaxWords
	}
	if cfg.Cloud.Width == 0 {
		cfg.Cloud.Width = def.Cloud.Width
	}
	if cfg.Cloud.Height == 0 {
		cfg.Cloud.Height = def.Cloud.Height
	}
	if cfg.Cloud.MinFontSize == 0 {
		cfg.Cloud.MinFontSize = def.Cloud.MinFontSize
	}
	if cfg.Cloud.MaxFontSize == 0 {
		cfg.Cloud.MaxFontSize = def.Cloud.MaxFontSize
	}
	if cfg.Venn.Width == 0 {
		cfg.Venn.Width = def.Venn.Width
	}
	if cfg.Venn.Height == 0 {
		cfg.Venn.Height = def.Venn.Height
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// applyEnvOverrides lets PLACEVIZ_* variables (usually from .env) win over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PLACEVIZ_DATA"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("PLACEVIZ_DATA_TYPE"); v != "" {
		cfg.Dataset.Type = v
	}
	if v := os.Getenv("PLACEVIZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLACEVIZ_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.TopN = n
		}
	}
}
