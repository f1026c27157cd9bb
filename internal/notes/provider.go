// Package notes handles the optional release-notes file.
//
// Notes are consumed exactly once: loaded near the start of a run, attached
// to that run's audit record, and then the source file is emptied (not
// deleted) so stale notes never leak into a later, unrelated run.
package notes

import (
	"fmt"
	"os"
	"strings"
)

// Provider reads and clears the release-notes file at a fixed path.
type Provider struct {
	path string
}

// NewProvider constructs a provider for the given notes path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the notes file location.
func (p *Provider) Path() string {
	return p.path
}

// Load returns the notes as an ordered sequence of lines. A missing or empty
// file yields no lines and no error.
func (p *Provider) Load() ([]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read release notes: %w", err)
	}

	content := strings.TrimRight(string(data), "\r\n")
	if content == "" {
		return nil, nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// Clear empties the notes file. A missing file is left missing.
func (p *Provider) Clear() error {
	if _, err := os.Stat(p.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat release notes: %w", err)
	}
	if err := os.WriteFile(p.path, nil, 0o644); err != nil {
		return fmt.Errorf("clear release notes: %w", err)
	}
	return nil
}
