// ABOUTME: Constructs the configured embedding backend.
// ABOUTME: Chooses between the local ONNX model and the OpenAI-compatible API.
package embeddings

import (
	"fmt"

	"github.com/2389-research/score-headlines/internal/config"
)

// Open returns the Embedder selected by cfg.Backend.
func Open(cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Backend {
	case config.BackendAPI:
		return NewAPIEmbedder(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case config.BackendONNX, "":
		dir, err := config.ExpandPath(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		lib, err := config.ExpandPath(cfg.ORTLibrary)
		if err != nil {
			return nil, err
		}
		return NewONNXEmbedder(dir, ONNXOptions{
			LibraryPath:       lib,
			MaxSequenceLength: cfg.MaxSequenceLength,
		})
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}
