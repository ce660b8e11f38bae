// Package runner provides functionality to run the lookup tool and capture its output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrStart is wrapped by Run when the process could not be started at all.
var ErrStart = errors.New("failed to start process")

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external command and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec runs commands on the host using os/exec.
type Exec struct{}

// Run starts name with args, waits for it and returns its stdout and stderr as text.
// A process that exits with a non-zero status is not an error; its status is
// reported in Result.ExitCode. Failing to start the process returns an error
// wrapping ErrStart.
func (Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s interrupted: %w", name, ctxErr)
		}
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("%w %s: %v", ErrStart, name, err)
}
