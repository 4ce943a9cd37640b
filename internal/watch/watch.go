// Package watch re-checks an SFL source file whenever it changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	"github.com/msto63/sfl/pkg/core/logging"
)

// Checker verifies one source text. *sfl.Engine implements it.
type Checker interface {
	Verify(source string) error
}

// Event is the verdict after one check of the watched file
type Event struct {
	Path string
	OK   bool
	Err  error
	At   time.Time
}

// Config holds watcher settings
type Config struct {
	// Debounce collapses bursts of writes into one check (default: 100ms)
	Debounce time.Duration
	Logger   *logging.Logger
}

// Watcher checks a file once on start and again after every change
type Watcher struct {
	checker  Checker
	debounce time.Duration
	logger   *logging.Logger
}

// New creates a watcher
func New(checker Checker, cfg Config) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("watch")
	}
	return &Watcher{checker: checker, debounce: debounce, logger: logger}
}

// Watch calls onEvent with the verdict for path, then again after each
// write until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are picked up.
func (w *Watcher) Watch(ctx context.Context, path string, onEvent func(Event)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.Watch").
			WithDetail("path", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeInternal).
			WithOperation("watch.Watch")
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("watch.Watch").
			WithDetail("path", path)
	}

	w.logger.Debug("Watching", "path", target, "debounce", w.debounce.String())
	onEvent(w.check(path, target))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err.Error())

		case <-fire:
			fire = nil
			onEvent(w.check(path, target))
		}
	}
}

func (w *Watcher) check(display, target string) Event {
	ev := Event{Path: display, At: time.Now()}

	content, err := os.ReadFile(target)
	if err != nil {
		ev.Err = mdwerror.Wrap(err, "failed to read source").
			WithCode(mdwerror.CodeReadFailed).
			WithOperation("watch.check").
			WithDetail("path", display)
		return ev
	}

	ev.Err = w.checker.Verify(string(content))
	ev.OK = ev.Err == nil
	return ev
}
