// Package history persists one record per publish run in a SQLite database.
//
// The audit TSV in package publog is the operator-facing artifact; this store
// is the queryable record behind `slipway history`. Both receive exactly one
// entry per orchestrator invocation, and neither is allowed to fail the run.
package history
