package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for publish targets and run state.
type Paths struct {
	LiveDir  string `toml:"live_dir"`
	QueueDir string `toml:"queue_dir"`
	LogDir   string `toml:"log_dir"`
	AuditLog string `toml:"audit_log"`
}

// Site contains configuration for the live site.
type Site struct {
	URL string `toml:"url"`
}

// Build contains the external build command invocation.
type Build struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Publish contains the external publish command invocation. The destination
// directory is appended as the final argument at run time.
type Publish struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Maintenance contains configuration for the offline-marker protocol.
type Maintenance struct {
	MarkerName         string `toml:"marker_name"`
	GracePeriodSeconds int    `toml:"grace_period_seconds"`
}

// Notes contains configuration for the release-notes file.
type Notes struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for slipway.
//
// Configuration sections by subsystem:
//   - Paths: live/queue target directories, log directory, audit log path
//   - Site: the URL opened after a successful live publish
//   - Build: the external build toolchain invocation
//   - Publish: the external publish toolchain invocation
//   - Maintenance: offline marker name and grace period
//   - Notes: release-notes file location
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Site        Site        `toml:"site"`
	Build       Build       `toml:"build"`
	Publish     Publish     `toml:"publish"`
	Maintenance Maintenance `toml:"maintenance"`
	Notes       Notes       `toml:"notes"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slipway/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A project-local .env
// file is loaded on a best-effort basis before environment fallbacks are read.
func Load(path string) (*Config, string, bool, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slipway.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory required for run state (lock
// file, history database, log output). Target directories are not created
// here: a missing target is a configuration problem the operator should see.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// GracePeriod returns the maintenance grace period as a duration.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.Maintenance.GracePeriodSeconds) * time.Second
}

// MarkerPath returns the offline marker path inside the live directory.
func (c *Config) MarkerPath() string {
	return filepath.Join(c.Paths.LiveDir, c.Maintenance.MarkerName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
