// ABOUTME: Configuration management for score-headlines with YAML or TOML loading.
// ABOUTME: Holds model artifact paths, embedding backend settings, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Built-in defaults used when no config file overrides them.
const (
	DefaultEmbeddingBackend   = "onnx"
	DefaultEmbeddingModelPath = "/opt/huggingface_models/all-MiniLM-L6-v2"
	DefaultMaxSequenceLength  = 256
	DefaultClassifierPath     = "svm.json"
)

// Embedding backends.
const (
	BackendONNX = "onnx"
	BackendAPI  = "api"
)

// Config stores score-headlines configuration loaded from ~/.config/score-headlines/config.yaml.
type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding" toml:"embedding"`
	Classifier ClassifierConfig `yaml:"classifier" toml:"classifier"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
}

// EmbeddingConfig selects and configures the sentence embedding model.
type EmbeddingConfig struct {
	Backend           string `yaml:"backend" toml:"backend"`
	ModelPath         string `yaml:"model_path" toml:"model_path"`
	ORTLibrary        string `yaml:"ort_library,omitempty" toml:"ort_library"`
	MaxSequenceLength int    `yaml:"max_sequence_length,omitempty" toml:"max_sequence_length"`

	// API backend only.
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url"`
	APIKey  string `yaml:"api_key,omitempty" toml:"api_key"`
	Model   string `yaml:"model,omitempty" toml:"model"`
}

// ClassifierConfig points at the exported linear SVM artifact.
type ClassifierConfig struct {
	ModelPath string `yaml:"model_path" toml:"model_path"`
}

// OutputConfig controls where score files are written.
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty" toml:"dir"`
}

// Default returns a config holding the built-in defaults.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Backend:           DefaultEmbeddingBackend,
			ModelPath:         DefaultEmbeddingModelPath,
			MaxSequenceLength: DefaultMaxSequenceLength,
		},
		Classifier: ClassifierConfig{
			ModelPath: DefaultClassifierPath,
		},
	}
}

// applyDefaults fills zero-valued fields from Default().
func (c *Config) applyDefaults() {
	d := Default()
	if c.Embedding.Backend == "" {
		c.Embedding.Backend = d.Embedding.Backend
	}
	if c.Embedding.ModelPath == "" {
		c.Embedding.ModelPath = d.Embedding.ModelPath
	}
	if c.Embedding.MaxSequenceLength == 0 {
		c.Embedding.MaxSequenceLength = d.Embedding.MaxSequenceLength
	}
	if c.Classifier.ModelPath == "" {
		c.Classifier.ModelPath = d.Classifier.ModelPath
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	switch c.Embedding.Backend {
	case BackendONNX:
	case BackendAPI:
		if c.Embedding.BaseURL == "" {
			return fmt.Errorf("embedding.base_url is required for the %q backend", BackendAPI)
		}
	default:
		return fmt.Errorf("unknown embedding backend %q (want %q or %q)", c.Embedding.Backend, BackendONNX, BackendAPI)
	}
	if c.Embedding.MaxSequenceLength < 0 {
		return fmt.Errorf("embedding.max_sequence_length must not be negative")
	}
	return nil
}

// GetEmbeddingModelPath returns the embedding model directory with ~ expanded.
func (c *Config) GetEmbeddingModelPath() (string, error) {
	return ExpandPath(c.Embedding.ModelPath)
}

// GetClassifierPath returns the classifier artifact path with ~ expanded.
func (c *Config) GetClassifierPath() (string, error) {
	return ExpandPath(c.Classifier.ModelPath)
}

// GetOutputDir returns the output directory, defaulting to the current working directory.
func (c *Config) GetOutputDir() (string, error) {
	if c.Output.Dir != "" {
		return ExpandPath(c.Output.Dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "score-headlines", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from the default location. Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads config from an explicit path. Unlike Load, a missing file is an error.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return loadFile(expanded)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
