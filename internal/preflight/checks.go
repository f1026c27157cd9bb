// Package preflight verifies the environment before a publish run: toolchain
// binaries resolvable on PATH and target directories accessible.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"slipway/internal/config"
)

// Result reports one preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Requirement defines an external binary slipway relies on.
type Requirement struct {
	Name    string
	Command string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Result {
	results := make([]Result, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			results = append(results, Result{Name: req.Name, Detail: "command not configured"})
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			results = append(results, Result{Name: req.Name, Detail: fmt.Sprintf("binary %q not found", cmd)})
			continue
		}
		results = append(results, Result{Name: req.Name, Passed: true, Detail: cmd})
	}
	return results
}

// CheckDirectories verifies read/write/execute access on the configured
// target and log directories. Unconfigured targets are skipped.
func CheckDirectories(cfg *config.Config) []Result {
	checks := []struct {
		name string
		dir  string
	}{
		{"live directory", cfg.Paths.LiveDir},
		{"queue directory", cfg.Paths.QueueDir},
		{"log directory", cfg.Paths.LogDir},
	}

	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if strings.TrimSpace(check.dir) == "" {
			continue
		}
		results = append(results, checkDirectory(check.name, check.dir))
	}
	return results
}

func checkDirectory(name, dir string) Result {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", dir)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", dir)}
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not read/write accessible", dir)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// Run performs all checks for the given configuration.
func Run(cfg *config.Config) []Result {
	results := CheckBinaries([]Requirement{
		{Name: "build command", Command: cfg.Build.Command},
		{Name: "publish command", Command: cfg.Publish.Command},
	})
	return append(results, CheckDirectories(cfg)...)
}
