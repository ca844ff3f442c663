// ABOUTME: Loads headlines from a plain-text input file, one per line.
// ABOUTME: Trims whitespace, drops blank lines, and preserves file order.
package headlines

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInputNotFound is returned when the input file is missing or cannot be opened.
var ErrInputNotFound = errors.New("input file not found")

const maxLineBytes = 1 << 20

// Load reads path and returns its non-empty, whitespace-trimmed lines in order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInputNotFound, path, err)
	}
	defer func() { _ = f.Close() }()

	var headlines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		headlines = append(headlines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return headlines, nil
}
