// Package vpn provides VPN tunnel toggling functionality.
// This file contains the Toggler, which applies one direction to every
// registered path and aggregates the outcomes into a Report.
package vpn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/wg-toggle/common"
)

// Direction is the toggle request: bring tunnels up or down.
type Direction int

const (
	// Up activates every registered tunnel.
	Up Direction = iota
	// Down deactivates every registered tunnel.
	Down
)

// Verb returns the tool subcommand for the direction.
func (d Direction) Verb() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// String returns the label used in report lines.
func (d Direction) String() string {
	if d == Down {
		return "VPN OFF"
	}
	return "VPN ON"
}

// MarshalText encodes the direction as its verb.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.Verb()), nil
}

// Outcome classifies the result for one path.
type Outcome int

const (
	// OutcomeSuccess means the tool exited zero.
	OutcomeSuccess Outcome = iota
	// OutcomeFailed means the tool ran and exited non-zero.
	OutcomeFailed
	// OutcomeError means the tool could not be started.
	OutcomeError
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailed:
		return "Failed"
	case OutcomeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of toggling a single path.
type Result struct {
	Path      string    `json:"path"`
	Direction Direction `json:"direction"`
	Outcome   Outcome   `json:"outcome"`
	// Detail is the tool's stderr for OutcomeFailed, with trailing "\r"
	// and "\n" removed so each report line ends in a single newline, and
	// the launch error for OutcomeError.
	Detail string `json:"detail,omitempty"`
}

// String renders the result as a report line without the trailing newline.
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("%s for %s: Success", r.Direction, r.Path)
	case OutcomeFailed:
		return fmt.Sprintf("%s for %s: Failed - %s", r.Direction, r.Path, r.Detail)
	default:
		return fmt.Sprintf("%s for %s: Error - %s", r.Direction, r.Path, r.Detail)
	}
}

// Err returns nil for a successful result and an error wrapping the
// matching sentinel otherwise.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeSuccess:
		return nil
	case OutcomeFailed:
		return fmt.Errorf("%s: %w: %s", r.Path, common.ErrExternalCommandFailure, r.Detail)
	default:
		return fmt.Errorf("%s: %w: %s", r.Path, common.ErrExternalCommandSpawn, r.Detail)
	}
}

// Report aggregates the results of one toggle request.
type Report struct {
	ID        uuid.UUID `json:"id"`
	Direction Direction `json:"direction"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Results   []Result  `json:"results"`
}

// String renders every result as one newline-terminated line, in the order
// the paths were processed. An empty report renders as "".
func (r *Report) String() string {
	var b strings.Builder
	for _, res := range r.Results {
		b.WriteString(res.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Failures returns how many paths did not succeed.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome != OutcomeSuccess {
			n++
		}
	}
	return n
}

// OK reports whether every path succeeded.
func (r *Report) OK() bool {
	return r.Failures() == 0
}

// PathLister supplies the registered paths.
type PathLister interface {
	List(ctx context.Context) ([]string, error)
}

// Toggler drives the runner for every registered path.
// Paths are processed sequentially; a failing path never stops the rest.
type Toggler struct {
	paths    PathLister
	runner   Runner
	mu       sync.RWMutex
	onResult func(Result)
}

// NewToggler creates a Toggler reading paths from paths and applying them
// with runner.
func NewToggler(paths PathLister, runner Runner) *Toggler {
	return &Toggler{paths: paths, runner: runner}
}

// SetOnResult sets a callback invoked after each path is processed.
func (t *Toggler) SetOnResult(handler func(Result)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResult = handler
}

// Toggle applies dir to every registered path. It fails only when the
// path list cannot be read, in which case the runner is never invoked.
// Per-path failures are recorded in the report.
func (t *Toggler) Toggle(ctx context.Context, dir Direction) (*Report, error) {
	paths, err := t.paths.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPathListUnavailable, err)
	}

	report := &Report{
		ID:        uuid.New(),
		Direction: dir,
		Started:   time.Now(),
		Results:   make([]Result, 0, len(paths)),
	}
	logger := common.Log().With().Str("report", report.ID.String()).Str("direction", dir.Verb()).Logger()
	logger.Info().Int("paths", len(paths)).Msg("toggle started")

	t.mu.RLock()
	onResult := t.onResult
	t.mu.RUnlock()

	for _, path := range paths {
		res := Result{Path: path, Direction: dir}

		runErr := t.runner.Run(ctx, dir.Verb(), path)
		var exitErr *ExitError
		switch {
		case runErr == nil:
			res.Outcome = OutcomeSuccess
		case errors.As(runErr, &exitErr):
			res.Outcome = OutcomeFailed
			res.Detail = strings.TrimRight(exitErr.Stderr, "\r\n")
		default:
			res.Outcome = OutcomeError
			res.Detail = runErr.Error()
		}

		logger.Info().Str("path", path).Stringer("outcome", res.Outcome).Str("detail", res.Detail).Msg("path processed")
		report.Results = append(report.Results, res)

		if onResult != nil {
			onResult(res)
		}
	}

	report.Finished = time.Now()
	logger.Info().Int("failures", report.Failures()).Dur("took", report.Finished.Sub(report.Started)).Msg("toggle finished")
	return report, nil
}
