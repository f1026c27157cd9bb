// Package logging builds the slog loggers used across slipway.
//
// Two output formats are supported: a console format intended for the
// operator's terminal (timestamp, level, component, message, key=value
// attributes) and plain JSON for machine consumption. Output always goes to
// stdout and, when a log directory is configured, to slipway.log inside it.
package logging
