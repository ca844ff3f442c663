// ABOUTME: Core data models for headline scoring runs.
// ABOUTME: Defines labels, scored headline records, and per-run metadata.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUsage is returned when the command line has the wrong number of arguments.
var ErrUsage = errors.New("usage error")

// Label is a discrete class assigned to a headline by the classifier.
type Label string

// UnmarshalJSON accepts either a JSON string or a JSON number.
// Exported sklearn classes are often integers like 0/1 or -1/1.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty label")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or number, got %s", string(data))
	}
	*l = Label(n.String())
	return nil
}

// Score pairs a classifier label with the headline it was assigned to.
type Score struct {
	Label    Label
	Headline string
}

// String renders the score as a single output record: "<label>,<headline>".
// Commas inside the headline are not escaped.
func (s Score) String() string {
	return string(s.Label) + "," + s.Headline
}

// ParseScore splits an output record on its first comma.
func ParseScore(line string) (Score, error) {
	line = strings.TrimRight(line, "\r\n")
	idx := strings.Index(line, ",")
	if idx < 0 {
		return Score{}, fmt.Errorf("malformed record %q: missing comma", line)
	}
	return Score{Label: Label(line[:idx]), Headline: line[idx+1:]}, nil
}

// Run describes a single scoring invocation.
type Run struct {
	ID        uuid.UUID
	Source    string
	StartedAt time.Time
}

// NewRun creates a run with a generated UUID and the current time.
func NewRun(source string) *Run {
	return &Run{
		ID:        uuid.New(),
		Source:    source,
		StartedAt: time.Now(),
	}
}
