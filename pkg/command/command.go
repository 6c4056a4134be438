// Package command runs external programs: package managers, installer
// scripts, systemctl and the KDE command-line tools. Every call blocks until
// the child exits; no timeout is imposed beyond the caller's context.
package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// exitNotFound is the shell's convention for "command not found"
const exitNotFound = 127

// Command describes one subprocess invocation
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// New builds a Command from an argv slice
func New(argv ...string) Command {
	if len(argv) == 0 {
		return Command{}
	}
	return Command{Name: argv[0], Args: argv[1:]}
}

// Argv returns the full argument vector
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command the way a user would type it
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, arg := range c.Argv() {
		if arg == "" || strings.ContainsAny(arg, " \t'\"") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Runner executes commands
type Runner interface {
	// Run executes cmd with stdin, stdout and stderr attached to the terminal.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its trimmed stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner implements Runner with os/exec
type ExecRunner struct {
	logger zerolog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner attached to the process's standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("command"),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes cmd, streaming its output
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c, err := r.build(ctx, cmd)
	if err != nil {
		return err
	}
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	if err := c.Run(); err != nil {
		return r.wrap(cmd, err, "")
	}

	r.logger.Debug().Str("command", cmd.Name).Msg("Command executed successfully")
	return nil
}

// Output executes cmd and captures stdout. Stderr is kept for the error.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c, err := r.build(ctx, cmd)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return strings.TrimSpace(stdout.String()), r.wrap(cmd, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) (*exec.Cmd, error) {
	if cmd.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command name cannot be empty")
	}

	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileAccess, "working directory does not exist: %s", cmd.Dir)
		}
	}

	logging.LogCommand(cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	return c, nil
}

func (r *ExecRunner) wrap(cmd Command, err error, stderr string) error {
	code := exitNotFound
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	r.logger.Debug().
		Err(err).
		Str("command", cmd.String()).
		Int("exitCode", code).
		Str("stderr", strings.TrimSpace(stderr)).
		Msg("Command execution failed")

	return errors.Wrapf(err, errors.ErrSubprocess, "command failed: %s", cmd.String()).
		WithDetail(errors.DetailExitCode, code).
		WithDetail("command", cmd.Name)
}
