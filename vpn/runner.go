// Package vpn provides VPN tunnel toggling functionality.
// This file contains the Runner abstraction over the external tunnel tool.
package vpn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/yllada/wg-toggle/common"
)

// Runner applies one tunnel change. Implementations return nil on success,
// an *ExitError when the tool ran and failed, and any other error when the
// tool could not be started at all.
type Runner interface {
	Run(ctx context.Context, verb, path string) error
}

// ExitError reports a tool that ran but exited non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, msg)
}

// Unwrap lets errors.Is match common.ErrExternalCommandFailure.
func (e *ExitError) Unwrap() error {
	return common.ErrExternalCommandFailure
}

// ExecRunner runs the tunnel tool as a subprocess, optionally behind
// sudo or pkexec.
type ExecRunner struct {
	// Tool is the command to run, "wg-quick" by default.
	Tool string
	// Elevate is one of common.ElevateSudo, common.ElevatePkexec or common.ElevateNone.
	Elevate string
}

// NewExecRunner creates a runner for tool using the given elevation mode.
func NewExecRunner(tool, elevate string) *ExecRunner {
	if tool == "" {
		tool = common.DefaultTool
	}
	return &ExecRunner{Tool: tool, Elevate: elevate}
}

// Args returns the full argv for "<tool> <verb> <path>" including the
// elevation prefix.
func (r *ExecRunner) Args(verb, path string) []string {
	args := []string{r.Tool, verb, path}
	switch r.Elevate {
	case common.ElevateSudo:
		return append([]string{"sudo"}, args...)
	case common.ElevatePkexec:
		return append([]string{"pkexec"}, args...)
	default:
		return args
	}
}

// Run executes the tool and classifies the result.
func (r *ExecRunner) Run(ctx context.Context, verb, path string) error {
	argv := r.Args(verb, path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	common.Log().Debug().Strs("argv", argv).Msg("running tunnel tool")

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return err
}

// Authorize refreshes sudo's cached credentials with the terminal attached,
// so later non-interactive runs do not prompt. It does nothing for other
// elevation modes.
func (r *ExecRunner) Authorize(ctx context.Context) error {
	if r.Elevate != common.ElevateSudo {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sudo", "-v")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sudo authorization failed: %w", err)
	}
	return nil
}
