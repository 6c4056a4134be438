package konsole

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// KDEGlobals is the file Plasma rewrites when the color scheme changes
const KDEGlobals = "kdeglobals"

// Watcher follows kdeglobals and applies the matching profile
type Watcher struct {
	// Dir is the directory holding kdeglobals. The directory is watched
	// rather than the file because Plasma replaces the file atomically.
	Dir      string
	Debounce time.Duration
	Switcher *Switcher

	now         func() time.Time
	lastSwitch  time.Time
	lastProfile string
}

// NewWatcher creates a watcher for dir
func NewWatcher(dir string, debounce time.Duration, s *Switcher) *Watcher {
	return &Watcher{Dir: dir, Debounce: debounce, Switcher: s, now: time.Now}
}

// Start applies the current profile unconditionally
func (w *Watcher) Start(ctx context.Context) string {
	profile := w.Switcher.TargetProfile(ctx)
	fmt.Fprintf(w.Switcher.Out, "Current KDE theme detected. Setting '%s' profile...\n", profile)
	w.Switcher.Apply(ctx, profile)
	w.lastProfile = profile
	return profile
}

// Changed handles one kdeglobals change. It does nothing when the last
// switch is more recent than the debounce window or when the profile
// would stay the same. It reports whether a switch happened.
func (w *Watcher) Changed(ctx context.Context) bool {
	now := w.now()
	if !w.lastSwitch.IsZero() && now.Sub(w.lastSwitch) < w.Debounce {
		return false
	}

	profile := w.Switcher.TargetProfile(ctx)
	if profile == w.lastProfile {
		return false
	}

	w.lastSwitch = now
	w.lastProfile = profile
	fmt.Fprintf(w.Switcher.Out, "KDE theme changed. Switching to '%s' profile...\n", profile)
	w.Switcher.Apply(ctx, profile)
	return true
}

// Run applies the current profile, then follows kdeglobals until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.GetLogger("konsole.watch")
	if w.now == nil {
		w.now = time.Now
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.Dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", w.Dir).
			WithDetail("path", w.Dir)
	}

	w.Start(ctx)
	fmt.Fprintf(w.Switcher.Out, "Watching %s for changes...\n", filepath.Join(w.Dir, KDEGlobals))

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w.Switcher.Out, "Shutting down...")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != KDEGlobals {
				continue
			}
			// Create covers atomic replacement via rename into place.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("kdeglobals changed")
			w.Changed(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}
