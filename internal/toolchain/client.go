package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"slipway/internal/config"
	"slipway/internal/logging"
)

var commandContext = exec.CommandContext

// ErrBuildFailed indicates the build command exited with a non-zero status.
var ErrBuildFailed = errors.New("build did not return a success code of 0")

// ErrPublishFailed indicates the publish command exited with a non-zero status.
var ErrPublishFailed = errors.New("publish did not return a success code of 0")

// Runner defines the external toolchain behaviour the orchestrator depends on.
type Runner interface {
	Build(ctx context.Context) error
	Publish(ctx context.Context, destDir string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithLogger overrides the default (discarding) logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI invokes the configured build and publish commands.
type CLI struct {
	buildCommand   string
	buildArgs      []string
	publishCommand string
	publishArgs    []string
	logger         *slog.Logger
}

// NewCLI constructs a client from configuration.
func NewCLI(cfg *config.Config, opts ...Option) *CLI {
	cli := &CLI{
		buildCommand:   cfg.Build.Command,
		buildArgs:      append([]string{}, cfg.Build.Args...),
		publishCommand: cfg.Publish.Command,
		publishArgs:    append([]string{}, cfg.Publish.Args...),
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Build runs the build command and verifies its exit status.
func (c *CLI) Build(ctx context.Context) error {
	c.logger.Info("running build", "component", "toolchain", "command", c.buildCommand)
	if err := c.run(ctx, c.buildCommand, c.buildArgs); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ErrBuildFailed
		}
		return fmt.Errorf("run build command: %w", err)
	}
	return nil
}

// Publish runs the publish command with destDir appended as the output path.
func (c *CLI) Publish(ctx context.Context, destDir string) error {
	if destDir == "" {
		return errors.New("destination directory required")
	}
	c.logger.Info("running publish", "component", "toolchain", "command", c.publishCommand, "dest", destDir)
	args := append(append([]string{}, c.publishArgs...), destDir)
	if err := c.run(ctx, c.publishCommand, args); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ErrPublishFailed
		}
		return fmt.Errorf("run publish command: %w", err)
	}
	return nil
}

func (c *CLI) run(ctx context.Context, name string, args []string) error {
	cmd := commandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

var _ Runner = (*CLI)(nil)
