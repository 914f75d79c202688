// Package watch reports debounced batches of changes under a content
// directory.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// Op is the kind of change seen for a path within one batch.
type Op string

const (
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Event is one changed file, relative to the watched directory with
// forward slashes.
type Event struct {
	Path string
	Op   Op
}

// Options configure a Watcher.
type Options struct {
	Debounce time.Duration
	// Match filters relative file paths. Nil accepts every file.
	Match  func(rel string) bool
	Logger interfaces.Logger
}

// Watcher watches a directory tree. Directories created while it runs are
// watched too. Hidden directories are skipped.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher
	opts    Options
	logger  interfaces.Logger
	pending map[string]Op
}

// New starts watching dir. Call Close to release the watches.
func New(dir string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		dir:     filepath.Clean(dir),
		fsw:     fsw,
		opts:    opts,
		logger:  logger,
		pending: map[string]Op{},
	}
	if err := w.addRecursive(w.dir, false); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches to onChange until ctx is done or the watcher is
// closed. A batch is flushed once no change arrived for the debounce period.
// Errors returned by onChange are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, batch []Event) error) error {
	var (
		timer  *time.Timer
		fire   <-chan time.Time
		events = w.fsw.Events
		errs   = w.fsw.Errors
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
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Error("watch.error", "error", err)
		case <-fire:
			fire = nil
			batch := w.flush()
			if len(batch) == 0 {
				continue
			}
			w.logger.Debug("watch.batch", "count", len(batch))
			if err := onChange(ctx, batch); err != nil {
				w.logger.Error("watch.callback_failed", "error", err)
			}
		}
	}
}

// handle records event and reports whether anything became pending.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name, true); err != nil {
				w.logger.Warn("watch.add_failed", "path", event.Name, "error", err)
			}
			return len(w.pending) > 0
		}
	}

	op := OpWrite
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = OpRemove
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
	default:
		return false
	}
	return w.record(event.Name, op)
}

func (w *Watcher) record(path string, op Op) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if w.opts.Match != nil && !w.opts.Match(rel) {
		return false
	}
	w.pending[rel] = op
	return true
}

func (w *Watcher) flush() []Event {
	batch := make([]Event, 0, len(w.pending))
	for path, op := range w.pending {
		batch = append(batch, Event{Path: path, Op: op})
	}
	w.pending = map[string]Op{}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	return batch
}

// addRecursive watches root and its subdirectories. With discover set, files
// already present are recorded as writes since their events predate the watch.
func (w *Watcher) addRecursive(root string, discover bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			if discover {
				w.record(path, OpWrite)
			}
			return nil
		}
		if base := d.Name(); path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.logger.Debug("watch.directory", "path", path)
		return nil
	})
}
