// Package publog maintains the append-only publish audit log.
//
// The log is a growing TSV file with one row per orchestrator invocation,
// success or failure alike. Rows are only ever appended; the header is
// written once, when the file is first created.
package publog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Result is the terminal outcome of one run.
type Result string

const (
	ResultSuccess Result = "Success"
	ResultFailed  Result = "Failed"
)

const header = "Date\tResult\tTarget\tMessage\n"

// Entry is one immutable audit record. ReleaseNotes ride the in-memory entry
// (and the history store); the persisted TSV row carries the other fields.
type Entry struct {
	Time         time.Time
	Result       Result
	Target       string
	Message      string
	ReleaseNotes []string
}

// Logger appends entries to the audit log file.
type Logger struct {
	path string
}

// New constructs a logger writing to path.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the audit log location.
func (l *Logger) Path() string {
	return l.path
}

// Append writes one row using append semantics. Existing content is never
// rewritten or truncated.
func (l *Logger) Append(entry Entry) error {
	if dir := filepath.Dir(l.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create audit log directory: %w", err)
		}
	}

	writeHeader := false
	if info, err := os.Stat(l.path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat audit log: %w", err)
		}
		writeHeader = true
	} else if info.Size() == 0 {
		writeHeader = true
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	var row strings.Builder
	if writeHeader {
		row.WriteString(header)
	}
	row.WriteString(entry.Time.Format(time.RFC3339))
	row.WriteByte('\t')
	row.WriteString(string(entry.Result))
	row.WriteByte('\t')
	row.WriteString(sanitize(entry.Target))
	row.WriteByte('\t')
	row.WriteString(sanitize(entry.Message))
	row.WriteByte('\n')

	if _, err := file.WriteString(row.String()); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return file.Close()
}

// sanitize keeps the row single-line and tab-delimited.
func sanitize(value string) string {
	replacer := strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")
	return replacer.Replace(value)
}
