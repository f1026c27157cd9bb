package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigValidateReportsTargets(t *testing.T) {
	base := t.TempDir()
	queueDir := filepath.Join(base, "queue")
	if err := os.MkdirAll(queueDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath := filepath.Join(base, "slipway.toml")
	body := "[paths]\nqueue_dir = \"" + queueDir + "\"\nlog_dir = \"" + filepath.Join(base, "logs") + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCommand(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid.") || !strings.Contains(out, queueDir) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestVersionSkipsConfigLoad(t *testing.T) {
	// No config anywhere; version must still work.
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "slipway ") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPublishWithInvalidTargetFlag(t *testing.T) {
	base := t.TempDir()
	queueDir := filepath.Join(base, "queue")
	if err := os.MkdirAll(queueDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath := filepath.Join(base, "slipway.toml")
	body := "[paths]\nqueue_dir = \"" + queueDir + "\"\nlog_dir = \"" + filepath.Join(base, "logs") + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCommand(t, "--config", configPath, "publish", "--target", "prod")
	if err == nil || !strings.Contains(err.Error(), "invalid target") {
		t.Fatalf("expected invalid target error, got %v", err)
	}
}
