// Package config loads, normalizes, and validates slipway configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SLIPWAY_LIVE_URL. The Config type centralizes every knob the CLI needs:
// target directories, the build and publish toolchain commands, the
// maintenance-window settings, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
