// Package deploy contains the publish orchestrator.
//
// One Run sequences build verification, the maintenance window (live targets
// only), the publish, and the unconditional logging tail. Any step failure
// becomes a Failed outcome and skips the remaining steps of the active
// branch; the audit log, the history store, and the release-notes clearing
// always run, whatever the outcome. The offline marker is removed only on
// the success path, so a failed live run leaves the maintenance page up
// rather than a half-updated site.
package deploy
