// Package toolchain wraps the external build and publish commands.
//
// Both commands are opaque to slipway: their stdout is discarded and only the
// process exit status is inspected. A zero exit status verifies the step; any
// other status maps to ErrBuildFailed or ErrPublishFailed.
package toolchain
