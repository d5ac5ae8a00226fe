package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default tool invocation settings
const (
	// DefaultToolPath is the analysis executable looked up on PATH
	DefaultToolPath = "rust-code-analysis-cli"

	// DefaultCheckName is the name of the remote check run
	DefaultCheckName = "rust-code-analysis"

	// DefaultAnnotationBatchSize is the per-update annotation cap imposed
	// by the Checks API
	DefaultAnnotationBatchSize = 50
)

// DefaultToolArgs returns the fixed arguments passed to the analysis tool
// before the target directory.
func DefaultToolArgs() []string {
	return []string{"--metrics", "--output-format", "json", "-p"}
}

// Config represents the main configuration structure
type Config struct {
	// Tool holds external analysis tool configuration
	Tool ToolConfig `json:"tool" mapstructure:"tool" yaml:"tool"`

	// Checks holds check-run reporting configuration
	Checks ChecksConfig `json:"checks" mapstructure:"checks" yaml:"checks"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`
}

// ToolConfig holds configuration for the external metrics tool
type ToolConfig struct {
	// Path is the tool executable; resolved on PATH when not absolute
	Path string `json:"path" mapstructure:"path" yaml:"path"`

	// Args are the fixed arguments passed before the target directory
	Args []string `json:"args" mapstructure:"args" yaml:"args"`
}

// ChecksConfig holds configuration for check-run reporting
type ChecksConfig struct {
	// Name is the check run name shown on the pull request
	Name string `json:"name" mapstructure:"name" yaml:"name"`

	// AnnotationBatchSize is the maximum annotations per update call
	AnnotationBatchSize int `json:"annotation_batch_size" mapstructure:"annotation_batch_size" yaml:"annotation_batch_size"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// ExcludePatterns specifies gitignore-style patterns for records to drop
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tool: ToolConfig{
			Path: DefaultToolPath,
			Args: DefaultToolArgs(),
		},
		Checks: ChecksConfig{
			Name:                DefaultCheckName,
			AnnotationBatchSize: DefaultAnnotationBatchSize,
		},
		Analysis: AnalysisConfig{
			ExcludePatterns: []string{
				"target",
				"node_modules",
				"vendor",
				".git",
			},
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// Orchestrates discovery and loading but delegates specific concerns.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the directory being analyzed.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"spacecheck.yaml",
		"spacecheck.yml",
		".spacecheck.yaml",
		".spacecheck.yml",
		"spacecheck.json",
		".spacecheck.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Search from target directory up to root with robust termination
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "spacecheck"), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/spacecheck/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "spacecheck")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check SPACECHECK_CONFIG environment variable as fallback
	if envConfig := os.Getenv("SPACECHECK_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tool.Path) == "" {
		return fmt.Errorf("tool.path cannot be empty")
	}

	if strings.TrimSpace(c.Checks.Name) == "" {
		return fmt.Errorf("checks.name cannot be empty")
	}

	if c.Checks.AnnotationBatchSize < 1 {
		return fmt.Errorf("checks.annotation_batch_size must be >= 1, got %d", c.Checks.AnnotationBatchSize)
	}

	// The Checks API rejects updates with more than 50 annotations
	if c.Checks.AnnotationBatchSize > DefaultAnnotationBatchSize {
		return fmt.Errorf("checks.annotation_batch_size cannot exceed %d, got %d",
			DefaultAnnotationBatchSize, c.Checks.AnnotationBatchSize)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("tool", config.Tool)
	v.Set("checks", config.Checks)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
