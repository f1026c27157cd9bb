package maintenance

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"slipway/internal/logging"
)

// markerBody is the placeholder content served while the site is offline.
// Its presence, not its content, is the protocol.
const markerBody = `<!DOCTYPE html>
<html>
<head><title>Maintenance</title></head>
<body><p>The site is being updated and will be back shortly.</p></body>
</html>
`

// ErrUnsafeTarget is returned when a target directory fails the safety guard.
var ErrUnsafeTarget = errors.New("refusing to clear unsafe target directory")

// Controller drives the marker lifecycle for one live target directory.
type Controller struct {
	dir        string
	markerName string
	grace      time.Duration
	sleep      func(time.Duration)
	logger     *slog.Logger
}

// Option configures the controller.
type Option func(*Controller)

// WithSleep overrides the grace-period sleeper. Intended for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger overrides the default (discarding) logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger.With("component", "maintenance")
		}
	}
}

// NewController constructs a controller for dir using the given marker name
// and grace period.
func NewController(dir, markerName string, grace time.Duration, opts ...Option) *Controller {
	ctrl := &Controller{
		dir:        dir,
		markerName: markerName,
		grace:      grace,
		sleep:      time.Sleep,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	return ctrl
}

// MarkerPath returns the full path of the marker file.
func (c *Controller) MarkerPath() string {
	return filepath.Join(c.dir, c.markerName)
}

// EnsureMarker creates the marker if it is absent. A surviving marker from an
// earlier failed run is reused, not recreated.
func (c *Controller) EnsureMarker() (created bool, err error) {
	path := c.MarkerPath()
	if _, err := os.Stat(path); err == nil {
		c.logger.Info("offline marker already present, reusing it", "path", path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat marker: %w", err)
	}

	if err := os.WriteFile(path, []byte(markerBody), 0o644); err != nil {
		return false, fmt.Errorf("create marker: %w", err)
	}
	c.logger.Info("offline marker created", "path", path)
	return true, nil
}

// AwaitGrace blocks for the configured grace period so the external host can
// notice the marker before any files are removed.
func (c *Controller) AwaitGrace() {
	if c.grace <= 0 {
		return
	}
	c.logger.Info("waiting for host to pick up the marker", "grace", c.grace)
	c.sleep(c.grace)
}

// ClearTarget recursively removes every entry directly under the target
// directory except the marker file.
func (c *Controller) ClearTarget() error {
	if err := guardTarget(c.dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read target directory: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == c.markerName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}
	c.logger.Info("target directory cleared", "dir", c.dir)
	return nil
}

// RemoveMarker deletes the marker. Only the orchestrator's success path may
// call this; every failure path leaves the marker in place so the host keeps
// serving the maintenance page instead of a half-updated directory.
func (c *Controller) RemoveMarker() error {
	if err := os.Remove(c.MarkerPath()); err != nil {
		return fmt.Errorf("remove marker: %w", err)
	}
	c.logger.Info("offline marker removed", "path", c.MarkerPath())
	return nil
}

// ClearDir recursively removes every entry directly under dir. Used for queue
// targets, which carry no live traffic and need no marker protocol.
func ClearDir(dir string) error {
	if err := guardTarget(dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read target directory: %w", err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// guardTarget fails closed for empty, relative, or root paths.
func guardTarget(dir string) error {
	cleaned := filepath.Clean(dir)
	if cleaned == "" || cleaned == "." || !filepath.IsAbs(cleaned) || cleaned == string(filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrUnsafeTarget, dir)
	}
	return nil
}
