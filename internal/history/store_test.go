package history_test

import (
	"context"
	"testing"
	"time"

	"slipway/internal/history"
	"slipway/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRecordRunAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	for i, rec := range []history.Record{
		{RunID: "run-a", Target: "queue", Result: "Success", Message: "published to queue directory"},
		{RunID: "run-b", Target: "live", Result: "Failed", Message: "publish did not return a success code of 0", ReleaseNotes: "fixed login bug"},
	} {
		rec.StartedAt = started.Add(time.Duration(i) * time.Hour)
		rec.FinishedAt = rec.StartedAt.Add(90 * time.Second)
		if _, err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].RunID != "run-b" || records[1].RunID != "run-a" {
		t.Fatalf("unexpected order: %q then %q", records[0].RunID, records[1].RunID)
	}
	if records[0].Result != "Failed" || records[0].Target != "live" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].ReleaseNotes != "fixed login bug" {
		t.Fatalf("release notes not persisted: %+v", records[0])
	}
	if records[0].Duration() != 90*time.Second {
		t.Fatalf("unexpected duration: %v", records[0].Duration())
	}
}

func TestRecentHonoursLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := history.Record{
			RunID:      "run",
			StartedAt:  now.Add(time.Duration(i) * time.Minute),
			FinishedAt: now.Add(time.Duration(i)*time.Minute + time.Second),
			Target:     "queue",
			Result:     "Success",
		}
		if _, err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	records, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("second Open (migrations re-applied): %v", err)
	}
	defer second.Close()

	if _, err := second.Recent(context.Background(), 1); err != nil {
		t.Fatalf("Recent after reopen: %v", err)
	}
}
