package common

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// QPConfig holds the knobs of the query processor which are decided per deployment.
type QPConfig struct {
	PageSize     int      `toml:"page_size"`
	PageBudget   int      `toml:"page_budget"`
	TmpDir       string   `toml:"tmp_dir"`
	OnMemStorage bool     `toml:"on_mem_storage"`
	LogLevels    []string `toml:"log_levels"`
}

func NewDefaultQPConfig() *QPConfig {
	return &QPConfig{
		PageSize:     DefaultPageSize,
		PageBudget:   DefaultPageBudget,
		TmpDir:       "",
		OnMemStorage: EnableOnMemStorage,
		LogLevels:    []string{"warn", "error", "fatal"},
	}
}

// LoadQPConfig reads a toml file. keys missing in the file keep default values.
func LoadQPConfig(path string) (*QPConfig, error) {
	cfg := NewDefaultQPConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseQPConfig(text string) (*QPConfig, error) {
	cfg := NewDefaultQPConfig()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *QPConfig) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive: %d", c.PageSize)
	}
	if c.PageBudget < MinSortBudget {
		return fmt.Errorf("page_budget must be at least %d: %d", MinSortBudget, c.PageBudget)
	}
	if !c.OnMemStorage && c.TmpDir == "" {
		return fmt.Errorf("tmp_dir is required when on_mem_storage is false")
	}
	return nil
}

func (c *QPConfig) LogLevel() LogLevel {
	return ParseLogLevel(c.LogLevels)
}
