// ABOUTME: Writes scored headlines to a dated, source-tagged output file.
// ABOUTME: Output is one "label,headline" record per line, replaced atomically.
package headlines

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio"

	"github.com/2389-research/score-headlines/internal/models"
)

// OutputFilename returns headline_scores_<source>_<YYYY_MM_DD>.txt for the local date of t.
func OutputFilename(source string, t time.Time) string {
	return fmt.Sprintf("headline_scores_%s_%s.txt", source, t.Format("2006_01_02"))
}

// Write pairs labels with headlines and writes them to OutputFilename(source, t) in dir.
// An existing file for the same source and day is overwritten. Returns the written path.
func Write(dir, source string, t time.Time, labels []models.Label, headlines []string) (string, error) {
	if len(labels) != len(headlines) {
		return "", fmt.Errorf("label count %d does not match headline count %d", len(labels), len(headlines))
	}

	var b strings.Builder
	for i, headline := range headlines {
		b.WriteString(models.Score{Label: labels[i], Headline: headline}.String())
		b.WriteString("\n")
	}

	path := filepath.Join(dir, OutputFilename(source, t))
	if err := renameio.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
