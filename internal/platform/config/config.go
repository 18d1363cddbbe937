package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Bounds limits the per-model analysis parameters. Out-of-range values are
// clamped at the analytics boundary, never rejected, so live edits in the UI
// always produce a runnable request.
type Bounds struct {
	MinLag       int     `yaml:"min_lag"`
	MaxLag       int     `yaml:"max_lag"`
	MinWindow    int     `yaml:"min_window"`
	MaxWindow    int     `yaml:"max_window"`
	MinThreshold float64 `yaml:"min_threshold"`
}

type Config struct {
	RootPath string `yaml:"-"`
	DBPath   string `yaml:"db_path"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
	Bounds   Bounds `yaml:"bounds"`
}

func Default(rootPath string) Config {
	return Config{
		RootPath: rootPath,
		DBPath:   filepath.Join(rootPath, ".studia", "studia.db"),
		Workers:  2,
		LogLevel: "info",
		Bounds: Bounds{
			MinLag:       1,
			MaxLag:       28,
			MinWindow:    2,
			MaxWindow:    14,
			MinThreshold: 1,
		},
	}
}

// Load reads <root>/.studia/config.yaml, creating it with defaults when absent.
func Load(rootPath string) (Config, error) {
	if rootPath == "" {
		return Config{}, fmt.Errorf("root path is required")
	}
	cfg := Default(rootPath)
	path := filepath.Join(rootPath, ".studia", "config.yaml")

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := write(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.RootPath = rootPath
	if cfg.DBPath == "" {
		cfg.DBPath = Default(rootPath).DBPath
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	cfg.Bounds = cfg.Bounds.normalized()
	return cfg, nil
}

func (b Bounds) normalized() Bounds {
	def := Default(".").Bounds
	if b.MinLag < 1 {
		b.MinLag = def.MinLag
	}
	if b.MaxLag < b.MinLag {
		b.MaxLag = def.MaxLag
	}
	if b.MinWindow < 2 {
		b.MinWindow = def.MinWindow
	}
	if b.MaxWindow < b.MinWindow {
		b.MaxWindow = def.MaxWindow
	}
	if b.MinThreshold <= 0 {
		b.MinThreshold = def.MinThreshold
	}
	return b
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
