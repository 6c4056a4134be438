package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Result scripts the outcome of a fake command
type Result struct {
	Output string
	// ExitCode > 0 makes the command fail with a SUBPROCESS error.
	ExitCode int
	Err      error
	// Hook runs before the result is returned, e.g. to touch files.
	Hook func(cmd command.Command)
}

// Runner records commands instead of running them. Results are matched by
// the longest registered prefix of the command's string form.
type Runner struct {
	mu       sync.Mutex
	Calls    []command.Command
	Results  map[string]Result
	Fallback Result
}

var _ command.Runner = (*Runner)(nil)

// NewRunner creates a runner where every command succeeds with no output
func NewRunner() *Runner {
	return &Runner{Results: make(map[string]Result)}
}

// On scripts the result for commands whose string form starts with prefix
func (r *Runner) On(prefix string, result Result) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[prefix] = result
	return r
}

func (r *Runner) Run(ctx context.Context, cmd command.Command) error {
	_, err := r.Output(ctx, cmd)
	return err
}

func (r *Runner) Output(ctx context.Context, cmd command.Command) (string, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, cmd)
	result := r.match(cmd.String())
	r.mu.Unlock()

	if result.Hook != nil {
		result.Hook(cmd)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result.Err != nil {
		return result.Output, result.Err
	}
	if result.ExitCode > 0 {
		return result.Output, errors.Newf(errors.ErrSubprocess, "command failed: %s", cmd.String()).
			WithDetail(errors.DetailExitCode, result.ExitCode)
	}
	return result.Output, nil
}

func (r *Runner) match(line string) Result {
	best, bestLen := r.Fallback, -1
	for prefix, result := range r.Results {
		if strings.HasPrefix(line, prefix) && len(prefix) > bestLen {
			best, bestLen = result, len(prefix)
		}
	}
	return best
}

// Lines returns every recorded command in string form
func (r *Runner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

// Count returns how many recorded commands start with prefix
func (r *Runner) Count(prefix string) int {
	n := 0
	for _, line := range r.Lines() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}
