package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSite(); err != nil {
		return err
	}
	c.normalizeToolchain()
	c.normalizeMaintenance()
	if err := c.normalizeNotes(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LiveDir) != "" {
		if c.Paths.LiveDir, err = expandPath(c.Paths.LiveDir); err != nil {
			return fmt.Errorf("paths.live_dir: %w", err)
		}
	} else {
		c.Paths.LiveDir = ""
	}
	if strings.TrimSpace(c.Paths.QueueDir) != "" {
		if c.Paths.QueueDir, err = expandPath(c.Paths.QueueDir); err != nil {
			return fmt.Errorf("paths.queue_dir: %w", err)
		}
	} else {
		c.Paths.QueueDir = ""
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AuditLog) == "" {
		c.Paths.AuditLog = filepath.Join(c.Paths.LogDir, defaultAuditLogName)
	} else if c.Paths.AuditLog, err = expandPath(c.Paths.AuditLog); err != nil {
		return fmt.Errorf("paths.audit_log: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() error {
	c.Site.URL = strings.TrimSpace(c.Site.URL)
	if c.Site.URL == "" {
		if value, ok := os.LookupEnv("SLIPWAY_LIVE_URL"); ok {
			c.Site.URL = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeToolchain() {
	c.Build.Command = strings.TrimSpace(c.Build.Command)
	if value, ok := os.LookupEnv("SLIPWAY_BUILD_COMMAND"); ok && strings.TrimSpace(value) != "" {
		c.Build.Command = strings.TrimSpace(value)
	}
	if c.Build.Command == "" {
		c.Build.Command = defaultBuildCommand
	}

	c.Publish.Command = strings.TrimSpace(c.Publish.Command)
	if value, ok := os.LookupEnv("SLIPWAY_PUBLISH_COMMAND"); ok && strings.TrimSpace(value) != "" {
		c.Publish.Command = strings.TrimSpace(value)
	}
	if c.Publish.Command == "" {
		c.Publish.Command = defaultPublishCommand
	}
}

func (c *Config) normalizeMaintenance() {
	c.Maintenance.MarkerName = strings.TrimSpace(c.Maintenance.MarkerName)
	if c.Maintenance.MarkerName == "" {
		c.Maintenance.MarkerName = defaultMarkerName
	}
}

func (c *Config) normalizeNotes() error {
	var err error
	if strings.TrimSpace(c.Notes.Path) == "" {
		c.Notes.Path = defaultNotesPath
	}
	if c.Notes.Path, err = expandPath(c.Notes.Path); err != nil {
		return fmt.Errorf("notes.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
