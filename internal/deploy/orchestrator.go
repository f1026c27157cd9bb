package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/browser"

	"slipway/internal/config"
	"slipway/internal/history"
	"slipway/internal/logging"
	"slipway/internal/maintenance"
	"slipway/internal/notes"
	"slipway/internal/publog"
	"slipway/internal/toolchain"
)

// ErrTargetNotConfigured indicates the chosen target has no directory set.
var ErrTargetNotConfigured = errors.New("target directory is not configured")

// ErrRunInProgress indicates another slipway invocation holds the run lock.
var ErrRunInProgress = errors.New("another slipway run is already in progress")

// Outcome is the terminal state of one orchestrator invocation.
type Outcome struct {
	Result  publog.Result
	Message string
}

// Succeeded reports whether the run completed its full sequence.
func (o Outcome) Succeeded() bool {
	return o.Result == publog.ResultSuccess
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLogger overrides the default (discarding) logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHistory attaches the publish-history store.
func WithHistory(store *history.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithSleep overrides the grace-period sleeper. Intended for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// WithBrowserOpener overrides how the live URL is opened. Intended for tests.
func WithBrowserOpener(open func(url string) error) Option {
	return func(o *Orchestrator) {
		if open != nil {
			o.openURL = open
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator sequences one publish run end to end.
type Orchestrator struct {
	cfg    *config.Config
	runner toolchain.Runner
	audit  *publog.Logger
	store  *history.Store
	notes  *notes.Provider
	logger *slog.Logger

	lock    *flock.Flock
	sleep   func(time.Duration)
	openURL func(url string) error
	now     func() time.Time
}

// New constructs an orchestrator with initialized dependencies.
func New(cfg *config.Config, runner toolchain.Runner, opts ...Option) (*Orchestrator, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("orchestrator requires config and toolchain runner")
	}

	orch := &Orchestrator{
		cfg:     cfg,
		runner:  runner,
		audit:   publog.New(cfg.Paths.AuditLog),
		notes:   notes.NewProvider(cfg.Notes.Path),
		logger:  logging.NewNop(),
		lock:    flock.New(filepath.Join(cfg.Paths.LogDir, "slipway.lock")),
		sleep:   time.Sleep,
		openURL: browser.OpenURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(orch)
	}
	return orch, nil
}

// Run executes the publish sequence for the given target and returns the
// terminal outcome. It appends exactly one audit row per invocation and
// clears non-empty release notes at the end, whatever the outcome.
func (o *Orchestrator) Run(ctx context.Context, target Target) Outcome {
	started := o.now()
	runID := uuid.NewString()
	logger := o.logger.With("component", "orchestrator", "run_id", runID, "target", string(target.Kind))
	logger.Info("publish run starting", "dir", target.Dir)

	var noteLines []string
	runErr := validateTarget(target)
	if runErr == nil {
		runErr = o.acquireLock()
	}
	if runErr == nil {
		defer o.releaseLock(logger)
		noteLines = o.loadNotes(logger)
		runErr = o.execute(ctx, logger, target)
	}

	outcome := Outcome{Result: publog.ResultSuccess, Message: successMessage(target)}
	if runErr != nil {
		outcome = Outcome{Result: publog.ResultFailed, Message: runErr.Error()}
	}

	finished := o.now()
	entry := publog.Entry{
		Time:         finished,
		Result:       outcome.Result,
		Target:       string(target.Kind),
		Message:      outcome.Message,
		ReleaseNotes: noteLines,
	}
	if err := o.audit.Append(entry); err != nil {
		// Logging must never abort the run; the loss is accepted.
		logger.Warn("audit log append failed", "error", err)
	}
	if o.store != nil {
		rec := history.Record{
			RunID:        runID,
			StartedAt:    started,
			FinishedAt:   finished,
			Target:       string(target.Kind),
			Result:       string(outcome.Result),
			Message:      outcome.Message,
			ReleaseNotes: strings.Join(noteLines, "\n"),
		}
		if _, err := o.store.RecordRun(ctx, rec); err != nil {
			logger.Warn("history record failed", "error", err)
		}
	}
	if len(noteLines) > 0 {
		if err := o.notes.Clear(); err != nil {
			logger.Warn("release notes clear failed", "error", err)
		}
	}

	if outcome.Succeeded() {
		logger.Info("publish run succeeded", "message", outcome.Message)
	} else {
		logger.Error("publish run failed", "reason", outcome.Message)
	}
	return outcome
}

func (o *Orchestrator) execute(ctx context.Context, logger *slog.Logger, target Target) error {
	if err := o.runner.Build(ctx); err != nil {
		return err
	}

	switch target.Kind {
	case KindQueue:
		// Queue directories carry no live traffic: clear unconditionally,
		// no marker protocol.
		if err := maintenance.ClearDir(target.Dir); err != nil {
			return err
		}
		return o.runner.Publish(ctx, target.Dir)

	case KindLive:
		ctrl := maintenance.NewController(
			target.Dir,
			o.cfg.Maintenance.MarkerName,
			o.cfg.GracePeriod(),
			maintenance.WithSleep(o.sleep),
			maintenance.WithLogger(o.logger),
		)
		if _, err := ctrl.EnsureMarker(); err != nil {
			return err
		}
		ctrl.AwaitGrace()
		if err := ctrl.ClearTarget(); err != nil {
			return err
		}
		if err := o.runner.Publish(ctx, target.Dir); err != nil {
			return err
		}
		// Reached only when the publish succeeded; every failure path above
		// leaves the marker in place.
		if err := ctrl.RemoveMarker(); err != nil {
			return err
		}
		o.openLiveSite(logger, target.URL)
		return nil

	default:
		return fmt.Errorf("unknown target kind %q", target.Kind)
	}
}

func (o *Orchestrator) openLiveSite(logger *slog.Logger, url string) {
	if strings.TrimSpace(url) == "" {
		logger.Warn("no site URL configured, skipping browser open")
		return
	}
	logger.Info("opening live site", "url", url)
	if err := o.openURL(url); err != nil {
		// The publish already succeeded; a browser failure is cosmetic.
		logger.Warn("open browser failed", "url", url, "error", err)
	}
}

func (o *Orchestrator) acquireLock() error {
	ok, err := o.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return ErrRunInProgress
	}
	return nil
}

func (o *Orchestrator) releaseLock(logger *slog.Logger) {
	if err := o.lock.Unlock(); err != nil {
		logger.Warn("release run lock failed", "error", err)
	}
}

func (o *Orchestrator) loadNotes(logger *slog.Logger) []string {
	lines, err := o.notes.Load()
	if err != nil {
		// Missing or unreadable notes never fail the run.
		logger.Warn("release notes load failed", "error", err)
		return nil
	}
	if len(lines) > 0 {
		logger.Info("release notes loaded", "lines", len(lines))
	}
	return lines
}

func validateTarget(target Target) error {
	if strings.TrimSpace(target.Dir) == "" {
		return fmt.Errorf("%w: %s", ErrTargetNotConfigured, target.Kind)
	}
	return nil
}

func successMessage(target Target) string {
	if target.Kind == KindLive {
		return "site published to live directory"
	}
	return "published to queue directory"
}
