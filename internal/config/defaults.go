package config

const (
	defaultLogDir             = "~/.local/share/slipway/logs"
	defaultAuditLogName       = "publish_log.tsv"
	defaultBuildCommand       = "npm"
	defaultPublishCommand     = "npm"
	defaultMarkerName         = "offline.html"
	defaultGracePeriodSeconds = 5
	defaultNotesPath          = "release_notes.txt"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Build: Build{
			Command: defaultBuildCommand,
			Args:    []string{"run", "build"},
		},
		Publish: Publish{
			Command: defaultPublishCommand,
			Args:    []string{"run", "publish", "--"},
		},
		Maintenance: Maintenance{
			MarkerName:         defaultMarkerName,
			GracePeriodSeconds: defaultGracePeriodSeconds,
		},
		Notes: Notes{
			Path: defaultNotesPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
