// Package watch reports edits to a chart file.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before a change is
// reported. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeRemoved
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is one debounced change to the watched file.
type Change struct {
	Kind ChangeKind
	File string
}

// Option configures a Watcher.
type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher monitors a single file. The parent directory is watched rather than
// the file itself so that editors replacing the file by rename are seen.
type Watcher struct {
	File    string
	Changes <-chan Change

	changes  chan Change
	done     chan struct{}
	started  bool
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *logger.Logger
}

// New creates a watcher for file. Call Start to begin receiving changes.
func New(file string, opts ...Option) (*Watcher, error) {
	if file == "" {
		return nil, errors.New("watch: no file given")
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		File:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: DefaultDebounce,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call
// whether or not Start succeeded, and more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watch error", "file", w.File, "error", err.Error())
		}
	}
}

func (w *Watcher) emit() {
	change := Change{Kind: ChangeModified, File: w.File}
	if _, err := os.Stat(w.File); err != nil {
		change.Kind = ChangeRemoved
	}
	w.log.Debug("chart file changed", "file", w.File, "kind", change.Kind.String())

	// A full buffer already holds a change the reader has yet to act on.
	select {
	case w.changes <- change:
	default:
	}
}
