package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"slipway/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Live, queue, and log directories exist when it returns.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LiveDir = filepath.Join(base, "live")
	cfgVal.Paths.QueueDir = filepath.Join(base, "queue")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.AuditLog = filepath.Join(base, "logs", "publish_log.tsv")
	cfgVal.Notes.Path = filepath.Join(base, "release_notes.txt")
	cfgVal.Site.URL = "https://example.test"
	cfgVal.Maintenance.GracePeriodSeconds = 0

	for _, dir := range []string{cfgVal.Paths.LiveDir, cfgVal.Paths.QueueDir, cfgVal.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStubbedBinaries writes succeeding stub executables for the provided
// names and prepends them to PATH. If names is empty, the config's build and
// publish commands are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Build.Command, b.cfg.Publish.Command}
		}
		for _, name := range names {
			StubBinary(b.t, b.baseDir, name, "#!/bin/sh\nexit 0\n")
		}
	}
}

// StubBinary writes an executable script under baseDir/bin and prepends that
// directory to PATH for the remainder of the test.
func StubBinary(t testing.TB, baseDir, name, script string) string {
	t.Helper()

	binDir := filepath.Join(baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LiveDir)
}
