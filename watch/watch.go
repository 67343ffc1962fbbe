// Package watch reloads a ruleset directory when its Lua files change.
//
// Every reload goes through loader.Load. A ruleset that loads without
// errors is published through a ruleset.Holder and the previous snapshot is
// retired: it is torn down once every reader that acquired it has released
// it. A ruleset with errors is reported and the published snapshot stays in
// place.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/loader"
	"github.com/nathoo/actioncore/report"
)

// DefaultDebounce is how long the directory must stay quiet before a
// reload. Editors often write a file in several steps.
const DefaultDebounce = 250 * time.Millisecond

// Result describes one reload.
type Result struct {
	Run       report.Run
	Published bool // the new ruleset replaced the previous one
	Err       error
}

// Stats counts watcher activity.
type Stats struct {
	Events    int
	Reloads   int
	Published int
	Rejected  int
	Errors    int
	LastEvent string
}

// Watcher reloads one ruleset directory.
type Watcher struct {
	dir      string
	holder   *ruleset.Holder
	log      *zap.Logger
	debounce time.Duration
	store    *report.Store
	onReload func(Result)

	mu      sync.Mutex
	pending time.Time
	stats   Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithStore records every reload in s.
func WithStore(s *report.Store) Option {
	return func(w *Watcher) { w.store = s }
}

// OnReload sets a callback run after every reload, on the watcher's
// goroutine.
func OnReload(fn func(Result)) Option {
	return func(w *Watcher) { w.onReload = fn }
}

// New returns a watcher publishing into holder.
func New(dir string, holder *ruleset.Holder, opts ...Option) (*Watcher, error) {
	if holder == nil {
		return nil, errors.New("watch: nil holder")
	}
	w := &Watcher{
		dir:      dir,
		holder:   holder,
		log:      zap.NewNop(),
		debounce: DefaultDebounce,
	}
	for _, o := range opts {
		o(w)
	}
	w.log = w.log.With(zap.String("dir", dir))
	return w, nil
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run watches the directory until ctx is done. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching ruleset directory", zap.Duration("debounce", w.debounce))

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if w.settled() {
				w.Reload(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".lua") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.log.Debug("ruleset file changed",
		zap.String("file", filepath.Base(event.Name)),
		zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEvent = event.Name
	w.pending = time.Now()
	w.mu.Unlock()
}

// settled reports whether a change is pending and the directory has been
// quiet for the debounce period. It clears the pending change.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

// Reload loads the directory now and publishes the result when it has no
// errors.
func (w *Watcher) Reload(ctx context.Context) Result {
	rs, err := loader.Load(w.dir, loader.WithLogger(w.log))
	res := Result{Run: report.NewRun(w.dir, rs, err), Err: err}

	if err == nil {
		w.holder.Replace(rs)
		res.Published = true
		w.log.Info("ruleset reloaded", zap.String("run", res.Run.ID))
	} else {
		if rs != nil {
			rs.Teardown()
		}
		w.log.Warn("ruleset rejected, keeping previous",
			zap.Int("errors", res.Run.Errors), zap.Error(err))
	}

	w.mu.Lock()
	w.stats.Reloads++
	if res.Published {
		w.stats.Published++
	} else {
		w.stats.Rejected++
	}
	w.mu.Unlock()

	if w.store != nil {
		if err := w.store.Record(ctx, res.Run); err != nil {
			w.log.Error("record run", zap.Error(err))
		}
	}
	if w.onReload != nil {
		w.onReload(res)
	}
	return res
}
