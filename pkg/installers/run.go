package installers

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
)

// Result records how one task went
type Result struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
}

// Observer is told about progress; both callbacks are optional
type Observer struct {
	Started  func(task Task)
	Finished func(result Result)
}

// RunAll runs tasks one after another and returns one result per task, in
// order. A failing or panicking task never stops the others. Once ctx is
// cancelled the remaining tasks are reported as skipped.
func RunAll(ctx context.Context, tasks []Task, obs Observer) []Result {
	logger := logging.GetLogger("installers")
	results := make([]Result, 0, len(tasks))

	for _, task := range tasks {
		if ctx.Err() != nil {
			r := Result{Name: task.Name(), Status: StatusSkipped, Err: ctx.Err()}
			results = append(results, r)
			if obs.Finished != nil {
				obs.Finished(r)
			}
			continue
		}

		if obs.Started != nil {
			obs.Started(task)
		}

		start := time.Now()
		status, err := runOne(ctx, task)
		r := Result{Name: task.Name(), Status: status, Err: err, Duration: time.Since(start)}

		event := logger.Info()
		if status == StatusFailed {
			event = logger.Warn().Err(err)
		}
		event.Str("installer", r.Name).
			Str("status", string(status)).
			Dur("duration", r.Duration).
			Msg("Installer finished")

		results = append(results, r)
		if obs.Finished != nil {
			obs.Finished(r)
		}
	}

	return results
}

func runOne(ctx context.Context, task Task) (status Status, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			status = StatusFailed
			err = errors.New(errors.ErrInternal, fmt.Sprintf("installer %s panicked: %v", task.Name(), rec))
		}
	}()

	status, err = task.Run(ctx)
	if err != nil && status != StatusSkipped {
		status = StatusFailed
	}
	if status == "" {
		status = StatusSuccess
	}
	return status, err
}

// Counts tallies results by status
func Counts(results []Result) map[Status]int {
	counts := map[Status]int{StatusSuccess: 0, StatusFailed: 0, StatusSkipped: 0}
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
