// ABOUTME: Embedding interface and batch vectorization for headline scoring.
// ABOUTME: Provides local ONNX-based embeddings with an OpenAI-compatible API alternative.
package embeddings

import (
	"context"
	"fmt"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedBatch returns one vector per text, in the same order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int

	// Close releases the model.
	Close() error
}

// Vectorize converts headlines to sentence embeddings, one per headline.
func Vectorize(ctx context.Context, e Embedder, headlines []string) ([][]float32, error) {
	vectors, err := e.EmbedBatch(ctx, headlines)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(headlines) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d headlines", len(vectors), len(headlines))
	}
	return vectors, nil
}
