package deploy

import "slipway/internal/config"

// Kind distinguishes the two publish targets.
type Kind string

const (
	// KindQueue publishes into the staging directory consumed by the
	// external deployment agent.
	KindQueue Kind = "queue"
	// KindLive publishes directly into the live serving directory.
	KindLive Kind = "live"
)

// Target is the destination of one publish run. Exactly one target is active
// per run, chosen by the operator.
type Target struct {
	Kind Kind
	Dir  string
	URL  string // live targets only
}

// QueueTarget builds the queue target from configuration.
func QueueTarget(cfg *config.Config) Target {
	return Target{Kind: KindQueue, Dir: cfg.Paths.QueueDir}
}

// LiveTarget builds the live target from configuration.
func LiveTarget(cfg *config.Config) Target {
	return Target{Kind: KindLive, Dir: cfg.Paths.LiveDir, URL: cfg.Site.URL}
}
