// Package maintenance manages the offline-marker protocol over a live target
// directory.
//
// The marker file is a plain sentinel: the external host serves it instead of
// the application while it is present. The controller creates it before any
// destructive action, waits a grace period so the host can react, clears
// every other entry in the directory, and removes the marker only once the
// orchestrator reports a successful publish. The marker is excluded from the
// clearing enumeration rather than deleted and recreated, so a crash mid-clear
// never leaves the directory both half-empty and marker-less.
package maintenance
