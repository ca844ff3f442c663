// ABOUTME: Runs the headline scoring pipeline: load, embed, classify, write.
// ABOUTME: Each stage consumes the previous stage's full output; any failure halts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/2389-research/score-headlines/internal/classifier"
	"github.com/2389-research/score-headlines/internal/embeddings"
	"github.com/2389-research/score-headlines/internal/headlines"
	"github.com/2389-research/score-headlines/internal/models"
)

// EmbedderFactory loads the sentence embedding model.
type EmbedderFactory func() (embeddings.Embedder, error)

// Options configures a single scoring run.
type Options struct {
	InputPath      string
	Source         string
	ClassifierPath string
	OutputDir      string
	OpenEmbedder   EmbedderFactory

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now overrides the clock used to date the output file.
	Now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	Run        *models.Run
	OutputPath string
	Count      int
}

// Run scores every headline in opts.InputPath and writes the output file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	run := models.NewRun(opts.Source)
	if opts.Now != nil {
		run.StartedAt = opts.Now()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", run.ID.String(), "source", run.Source)

	logger.Info("Loading headlines...", "input", opts.InputPath)
	lines, err := headlines.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("headlines loaded", "count", len(lines))

	logger.Info("Loading sentence transformer model...")
	embedder, err := opts.OpenEmbedder()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedding model: %w", err)
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			logger.Warn("failed to release embedding model", "err", err)
		}
	}()

	logger.Info("Vectorizing headlines...")
	vectors, err := embeddings.Vectorize(ctx, embedder, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize headlines: %w", err)
	}
	logger.Debug("headlines vectorized", "dimension", embedder.Dimension())

	logger.Info("Loading SVM sentiment classifier...", "path", opts.ClassifierPath)
	model, err := classifier.Load(opts.ClassifierPath)
	if err != nil {
		return nil, err
	}

	logger.Info("Generating predictions...")
	labels, err := model.Predict(vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to generate predictions: %w", err)
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		for i, v := range vectors {
			scores, _ := model.DecisionFunction(v)
			logger.Debug("prediction", "headline", lines[i], "label", string(labels[i]), "scores", scores)
		}
	}

	logger.Info("Writing output...")
	path, err := headlines.Write(opts.OutputDir, run.Source, run.StartedAt, labels, lines)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Predictions written to: %s", path))

	return &Result{Run: run, OutputPath: path, Count: len(lines)}, nil
}
