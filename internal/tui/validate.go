// ABOUTME: Model artifact validation for the setup wizard.
// ABOUTME: Checks the embedding model directory and loads the classifier artifact.
package tui

import (
	"context"
	"fmt"

	"github.com/2389-research/score-headlines/internal/classifier"
	"github.com/2389-research/score-headlines/internal/config"
	"github.com/2389-research/score-headlines/internal/embeddings"
)

// ValidateArtifacts checks that both artifacts exist and are usable.
// The context allows cancellation when the user quits during validation.
func ValidateArtifacts(ctx context.Context, modelPath, classifierPath string) error {
	modelDir, err := config.ExpandPath(modelPath)
	if err != nil {
		return err
	}
	if err := embeddings.ValidateModelDir(modelDir); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	svmPath, err := config.ExpandPath(classifierPath)
	if err != nil {
		return err
	}
	model, err := classifier.Load(svmPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return checkHiddenSize(modelDir, model.Dimension())
}

// checkHiddenSize catches a classifier trained on a different embedding model.
func checkHiddenSize(modelDir string, want int) error {
	got, err := embeddings.HiddenSize(modelDir)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("classifier expects %d-dimensional vectors but the embedding model produces %d", want, got)
	}
	return nil
}
