package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable. It runs once, at load time,
// before any state transition touches the filesystem.
func (c *Config) Validate() error {
	if err := c.validateTargets(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateToolchain(); err != nil {
		return err
	}
	if err := c.validateMaintenance(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTargets() error {
	if c.Paths.LiveDir == "" && c.Paths.QueueDir == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/slipway/config.toml"
		}
		return fmt.Errorf("at least one of paths.live_dir or paths.queue_dir must be set. Edit %s (create with 'slipway config init')", defaultPath)
	}
	for name, dir := range map[string]string{"paths.live_dir": c.Paths.LiveDir, "paths.queue_dir": c.Paths.QueueDir} {
		if dir == "" {
			continue
		}
		if filepath.Clean(dir) == string(filepath.Separator) {
			return fmt.Errorf("%s must not be the filesystem root", name)
		}
	}
	if c.Paths.LiveDir != "" && c.Paths.LiveDir == c.Paths.QueueDir {
		return errors.New("paths.live_dir and paths.queue_dir must differ")
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.URL == "" {
		return nil
	}
	parsed, err := url.Parse(c.Site.URL)
	if err != nil {
		return fmt.Errorf("site.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("site.url must be an http(s) URL, got %q", c.Site.URL)
	}
	return nil
}

func (c *Config) validateToolchain() error {
	if strings.TrimSpace(c.Build.Command) == "" {
		return errors.New("build.command must be set")
	}
	if strings.TrimSpace(c.Publish.Command) == "" {
		return errors.New("publish.command must be set")
	}
	return nil
}

func (c *Config) validateMaintenance() error {
	if strings.ContainsAny(c.Maintenance.MarkerName, "/\\") {
		return fmt.Errorf("maintenance.marker_name must be a bare file name, got %q", c.Maintenance.MarkerName)
	}
	if c.Maintenance.GracePeriodSeconds < 0 {
		return errors.New("maintenance.grace_period_seconds must not be negative")
	}
	return nil
}
