package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"slipway/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "slipway.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadWithoutTargetsFailsValidation(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected validation error when no target directory is configured")
	}
	if !strings.Contains(err.Error(), "paths.live_dir") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadExpandsPathsAndAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, t.TempDir(), `
[paths]
live_dir = "~/www/site"
queue_dir = "~/www/queue"

[site]
url = "https://example.com"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}

	if cfg.Paths.LiveDir != filepath.Join(tempHome, "www", "site") {
		t.Fatalf("unexpected live dir: %q", cfg.Paths.LiveDir)
	}
	if cfg.Paths.QueueDir != filepath.Join(tempHome, "www", "queue") {
		t.Fatalf("unexpected queue dir: %q", cfg.Paths.QueueDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "slipway", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.AuditLog != filepath.Join(cfg.Paths.LogDir, "publish_log.tsv") {
		t.Fatalf("unexpected audit log path: %q", cfg.Paths.AuditLog)
	}
	if cfg.Build.Command != "npm" {
		t.Fatalf("unexpected build command: %q", cfg.Build.Command)
	}
	if cfg.Maintenance.MarkerName != "offline.html" {
		t.Fatalf("unexpected marker name: %q", cfg.Maintenance.MarkerName)
	}
	if cfg.GracePeriod() != 5*time.Second {
		t.Fatalf("unexpected grace period: %v", cfg.GracePeriod())
	}
	if cfg.MarkerPath() != filepath.Join(cfg.Paths.LiveDir, "offline.html") {
		t.Fatalf("unexpected marker path: %q", cfg.MarkerPath())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadHonoursEnvironmentFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SLIPWAY_LIVE_URL", "https://env.example.com")
	t.Setenv("SLIPWAY_BUILD_COMMAND", "make")

	path := writeConfig(t, t.TempDir(), `
[paths]
queue_dir = "~/www/queue"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.URL != "https://env.example.com" {
		t.Fatalf("expected URL from env, got %q", cfg.Site.URL)
	}
	if cfg.Build.Command != "make" {
		t.Fatalf("expected build command from env, got %q", cfg.Build.Command)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "non-http url",
			body: "[paths]\nqueue_dir = \"~/q\"\n[site]\nurl = \"ftp://example.com\"\n",
			want: "site.url",
		},
		{
			name: "marker with separator",
			body: "[paths]\nlive_dir = \"~/www\"\n[maintenance]\nmarker_name = \"sub/offline.html\"\n",
			want: "marker_name",
		},
		{
			name: "negative grace period",
			body: "[paths]\nlive_dir = \"~/www\"\n[maintenance]\ngrace_period_seconds = -1\n",
			want: "grace_period_seconds",
		},
		{
			name: "identical targets",
			body: "[paths]\nlive_dir = \"~/www\"\nqueue_dir = \"~/www\"\n",
			want: "must differ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tempHome := t.TempDir()
			t.Setenv("HOME", tempHome)

			path := writeConfig(t, t.TempDir(), tc.body)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %v does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[maintenance]") {
		t.Fatal("sample config missing maintenance section")
	}
}
