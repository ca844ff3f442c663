// ABOUTME: Pre-trained linear SVM classifier loaded from an exported JSON artifact.
// ABOUTME: Maps embedding vectors to discrete labels using sklearn decision semantics.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/2389-research/score-headlines/internal/models"
)

// ErrModelNotFound is returned when the classifier artifact does not exist.
var ErrModelNotFound = errors.New("SVM model not found")

// LinearModel is a fitted linear classifier: one weight row and intercept per
// decision function. A binary model has a single row; a one-vs-rest multiclass
// model has one row per class.
type LinearModel struct {
	Classes   []models.Label `json:"classes"`
	Coef      [][]float64    `json:"coef"`
	Intercept []float64      `json:"intercept"`
}

// Load reads and validates a classifier artifact.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at '%s'", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("failed to read SVM model: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse SVM model %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid SVM model %s: %w", path, err)
	}
	return &m, nil
}

func (m *LinearModel) validate() error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", len(m.Classes))
	}
	if len(m.Coef) == 0 {
		return fmt.Errorf("coef is empty")
	}
	if len(m.Intercept) != len(m.Coef) {
		return fmt.Errorf("intercept has %d entries, coef has %d rows", len(m.Intercept), len(m.Coef))
	}
	switch {
	case len(m.Classes) == 2 && len(m.Coef) != 1:
		return fmt.Errorf("binary model must have 1 coef row, got %d", len(m.Coef))
	case len(m.Classes) > 2 && len(m.Coef) != len(m.Classes):
		return fmt.Errorf("one-vs-rest model must have %d coef rows, got %d", len(m.Classes), len(m.Coef))
	}
	width := len(m.Coef[0])
	if width == 0 {
		return fmt.Errorf("coef rows are empty")
	}
	for i, row := range m.Coef {
		if len(row) != width {
			return fmt.Errorf("coef row %d has width %d, want %d", i, len(row), width)
		}
	}
	return nil
}

// Dimension returns the input vector width the model expects.
func (m *LinearModel) Dimension() int {
	return len(m.Coef[0])
}

// DecisionFunction returns w·x + b for every coef row.
func (m *LinearModel) DecisionFunction(x []float32) ([]float64, error) {
	if len(x) != m.Dimension() {
		return nil, fmt.Errorf("vector has %d dimensions, model expects %d", len(x), m.Dimension())
	}
	scores := make([]float64, len(m.Coef))
	for r, row := range m.Coef {
		s := m.Intercept[r]
		for i, w := range row {
			s += w * float64(x[i])
		}
		scores[r] = s
	}
	return scores, nil
}

// PredictOne returns the label for a single vector.
func (m *LinearModel) PredictOne(x []float32) (models.Label, error) {
	scores, err := m.DecisionFunction(x)
	if err != nil {
		return "", err
	}
	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.Classes[1], nil
		}
		return m.Classes[0], nil
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.Classes[best], nil
}

// Predict returns one label per vector, in the same order.
func (m *LinearModel) Predict(vectors [][]float32) ([]models.Label, error) {
	labels := make([]models.Label, len(vectors))
	for i, v := range vectors {
		label, err := m.PredictOne(v)
		if err != nil {
			return nil, fmt.Errorf("predict vector %d: %w", i, err)
		}
		labels[i] = label
	}
	return labels, nil
}
