package publog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"slipway/internal/publog"
)

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publish_log.tsv")
	logger := publog.New(path)

	first := publog.Entry{
		Time:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Result:  publog.ResultSuccess,
		Target:  "queue",
		Message: "published to queue directory",
	}
	second := publog.Entry{
		Time:    time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		Result:  publog.ResultFailed,
		Target:  "live",
		Message: "build did not return a success code of 0",
	}

	if err := logger.Append(first); err != nil {
		t.Fatalf("Append first: %v", err)
	}
	if err := logger.Append(second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "Date\tResult\tTarget\tMessage" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2026-08-01T12:00:00Z\tSuccess\tqueue\t") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Failed\tlive\tbuild did not return a success code of 0") {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestAppendNeverTruncatesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publish_log.tsv")
	logger := publog.New(path)

	entry := publog.Entry{Time: time.Now().UTC(), Result: publog.ResultSuccess, Target: "queue", Message: "ok"}
	for i := 0; i < 3; i++ {
		if err := logger.Append(entry); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 4 {
		t.Fatalf("expected 4 lines (header + 3 rows), got %d", got)
	}
}

func TestAppendSanitizesMultilineMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publish_log.tsv")
	logger := publog.New(path)

	entry := publog.Entry{
		Time:    time.Now().UTC(),
		Result:  publog.ResultFailed,
		Target:  "live",
		Message: "remove\tfailed:\npermission denied",
	}
	if err := logger.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("message must stay on one row, got %d lines", len(lines))
	}
	if fields := strings.Split(lines[1], "\t"); len(fields) != 4 {
		t.Fatalf("expected 4 tab-delimited fields, got %d: %q", len(fields), lines[1])
	}
}
