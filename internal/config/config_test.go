// ABOUTME: Tests for score-headlines configuration loading and path expansion.
// ABOUTME: Covers YAML and TOML parsing, defaults, validation, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	// Set config path to a non-existent location
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Embedding.Backend != BackendONNX {
		t.Errorf("expected default backend %q, got %q", BackendONNX, cfg.Embedding.Backend)
	}
	if cfg.Embedding.ModelPath != DefaultEmbeddingModelPath {
		t.Errorf("expected default model path, got %q", cfg.Embedding.ModelPath)
	}
	if cfg.Classifier.ModelPath != DefaultClassifierPath {
		t.Errorf("expected default classifier path, got %q", cfg.Classifier.ModelPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "score-headlines")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `embedding:
  backend: api
  base_url: "http://localhost:8080/v1"
  model: "all-minilm"
classifier:
  model_path: "~/models/svm.json"
output:
  dir: "/tmp/scores"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Embedding.Backend != BackendAPI {
		t.Errorf("expected backend 'api', got %q", cfg.Embedding.Backend)
	}
	if cfg.Embedding.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("expected base_url, got %q", cfg.Embedding.BaseURL)
	}
	// Unset fields fall back to defaults
	if cfg.Embedding.ModelPath != DefaultEmbeddingModelPath {
		t.Errorf("expected default model path, got %q", cfg.Embedding.ModelPath)
	}
	if cfg.Embedding.MaxSequenceLength != DefaultMaxSequenceLength {
		t.Errorf("expected default max sequence length, got %d", cfg.Embedding.MaxSequenceLength)
	}

	home, _ := os.UserHomeDir()
	if got, err := cfg.GetClassifierPath(); err != nil {
		t.Fatalf("GetClassifierPath() error: %v", err)
	} else if got != filepath.Join(home, "models", "svm.json") {
		t.Errorf("GetClassifierPath() = %q", got)
	}
	if got, err := cfg.GetOutputDir(); err != nil {
		t.Fatalf("GetOutputDir() error: %v", err)
	} else if got != "/tmp/scores" {
		t.Errorf("GetOutputDir() = %q, want /tmp/scores", got)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scorer.toml")
	configData := `[embedding]
backend = "onnx"
model_path = "/models/minilm"
ort_library = "/usr/lib/libonnxruntime.so"
max_sequence_length = 128

[classifier]
model_path = "/models/svm.json"
`
	if err := os.WriteFile(path, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Embedding.ModelPath != "/models/minilm" {
		t.Errorf("expected model_path '/models/minilm', got %q", cfg.Embedding.ModelPath)
	}
	if cfg.Embedding.ORTLibrary != "/usr/lib/libonnxruntime.so" {
		t.Errorf("expected ort_library, got %q", cfg.Embedding.ORTLibrary)
	}
	if cfg.Embedding.MaxSequenceLength != 128 {
		t.Errorf("expected max_sequence_length 128, got %d", cfg.Embedding.MaxSequenceLength)
	}
	if cfg.Classifier.ModelPath != "/models/svm.json" {
		t.Errorf("expected classifier path, got %q", cfg.Classifier.ModelPath)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("embedding: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Embedding.ModelPath = "/srv/models/minilm"
	cfg.Classifier.ModelPath = "/srv/models/svm.json"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Embedding.ModelPath != "/srv/models/minilm" {
		t.Errorf("expected model_path '/srv/models/minilm', got %q", loaded.Embedding.ModelPath)
	}
	if loaded.Classifier.ModelPath != "/srv/models/svm.json" {
		t.Errorf("expected classifier path '/srv/models/svm.json', got %q", loaded.Classifier.ModelPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"api without base url", func(c *Config) { c.Embedding.Backend = BackendAPI }, true},
		{"api with base url", func(c *Config) {
			c.Embedding.Backend = BackendAPI
			c.Embedding.BaseURL = "http://localhost:8080"
		}, false},
		{"unknown backend", func(c *Config) { c.Embedding.Backend = "tfidf" }, true},
		{"negative sequence length", func(c *Config) { c.Embedding.MaxSequenceLength = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultOutputDirIsCwd(t *testing.T) {
	cfg := Default()
	got, err := cfg.GetOutputDir()
	if err != nil {
		t.Fatalf("GetOutputDir() error: %v", err)
	}
	cwd, _ := os.Getwd()
	if got != cwd {
		t.Errorf("GetOutputDir() = %q, want %q", got, cwd)
	}
}
