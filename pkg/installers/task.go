package installers

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/command"
)

// Status is the outcome of one secondary installer
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Task is one secondary installer
type Task interface {
	Name() string
	Run(ctx context.Context) (Status, error)
}

// ScriptTask runs a discovered script through the configured shell
type ScriptTask struct {
	// Path is the absolute script path.
	Path string
	// Rel is Path relative to the dotfiles root, used as the task name.
	Rel    string
	Shell  string
	Runner command.Runner
}

func (t *ScriptTask) Name() string {
	if t.Rel != "" {
		return t.Rel
	}
	return t.Path
}

// Command is the invocation: no arguments, working directory set to the
// script's own directory.
func (t *ScriptTask) Command() command.Command {
	return command.Command{
		Name: t.Shell,
		Args: []string{t.Path},
		Dir:  filepath.Dir(t.Path),
	}
}

func (t *ScriptTask) Run(ctx context.Context) (Status, error) {
	if err := t.Runner.Run(ctx, t.Command()); err != nil {
		return StatusFailed, err
	}
	return StatusSuccess, nil
}
