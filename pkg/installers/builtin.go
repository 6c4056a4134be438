package installers

import (
	"context"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/arthur-debert/dotsetup/pkg/registry"
)

// Env is what a builtin task gets to work with
type Env struct {
	Paths    paths.Paths
	Config   *config.Config
	Runner   command.Runner
	Platform platform.Descriptor
}

// Factory builds a builtin task
type Factory func(env Env) Task

var builtins = registry.New[Factory]("builtin installer")

// RegisterBuiltin makes a task available under name. Call it from init().
func RegisterBuiltin(name string, factory Factory) {
	registry.MustRegister(builtins, name, factory)
}

// BuiltinNames lists every registered builtin
func BuiltinNames() []string {
	return builtins.List()
}

// Builtins instantiates the named builtins in the given order. A name
// nobody registered becomes a task that fails, so a typo in the
// configuration surfaces in the summary without aborting the run.
func Builtins(names []string, env Env) []Task {
	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		factory, err := builtins.Get(name)
		if err != nil {
			tasks = append(tasks, &unknownTask{name: name, err: err})
			continue
		}
		tasks = append(tasks, factory(env))
	}
	return tasks
}

type unknownTask struct {
	name string
	err  error
}

func (t *unknownTask) Name() string { return t.name }

func (t *unknownTask) Run(context.Context) (Status, error) {
	return StatusFailed, t.err
}
