// Package watch re-resolves a project's entries whenever its configuration
// files change.
//
// A Watcher observes the directories holding the project config file and
// its .env file with fsnotify. Bursts of events are debounced; each burst
// reloads the configuration, resolves the entries again and reports the
// difference to the previous resolution.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/config"
)

// DefaultDebounce is the quiet period after the last event before a reload.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc loads the project configuration.
type LoadFunc func() (*config.Config, error)

// ResolveFunc resolves the entries of a loaded configuration.
type ResolveFunc func(*config.Config) (*artpack.EntryMap, error)

// Event is reported after every reload.
type Event struct {
	// Config is the configuration that was loaded. Nil when Err is set.
	Config *config.Config

	// Entries is the new resolution. Nil when Err is set.
	Entries *artpack.EntryMap

	// Diff compares Entries to the previous successful resolution.
	Diff *artpack.EntryDiff

	// Err is the load or resolve failure. The previous resolution stays
	// current until a reload succeeds.
	Err error
}

// Watcher reloads a project when its configuration changes.
type Watcher struct {
	load     LoadFunc
	resolve  ResolveFunc
	debounce time.Duration
	onChange func(Event)
	logger   *slog.Logger

	mu      sync.Mutex
	cfg     *config.Config
	entries *artpack.EntryMap
}

// Option configures a Watcher.
type Option func(*Watcher) error

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) error {
		if d < 0 {
			return fmt.Errorf("debounce must be non-negative, got %s", d)
		}
		w.debounce = d
		return nil
	}
}

// OnChange sets the callback invoked after every reload. It runs on the
// watcher goroutine; Run does not process further events until it returns.
func OnChange(fn func(Event)) Option {
	return func(w *Watcher) error {
		w.onChange = fn
		return nil
	}
}

// WithLogger sets a structured logger for watch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) error {
		w.logger = l
		return nil
	}
}

// New creates a Watcher. A nil resolve resolves the configuration's
// manifest with its module filters and default resolver options.
func New(load LoadFunc, resolve ResolveFunc, opts ...Option) (*Watcher, error) {
	if load == nil {
		return nil, fmt.Errorf("watch: load function is required")
	}
	if resolve == nil {
		resolve = ResolveConfig()
	}
	w := &Watcher{
		load:     load,
		resolve:  resolve,
		debounce: DefaultDebounce,
		logger:   slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// ResolveConfig returns a ResolveFunc resolving cfg.Manifest with
// cfg.Modules.
func ResolveConfig(opts ...artpack.Option) ResolveFunc {
	return func(cfg *config.Config) (*artpack.EntryMap, error) {
		return artpack.ResolveEntries(cfg.Manifest, cfg.Modules, opts...)
	}
}

// Current returns the last successful configuration and resolution.
func (w *Watcher) Current() (*config.Config, *artpack.EntryMap) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg, w.entries
}

// Run loads and resolves the project, then reloads on every change until
// ctx is done. The initial load must succeed; later failures are reported
// through OnChange and logged.
func (w *Watcher) Run(ctx context.Context) error {
	cfg, entries, err := w.reload()
	if err != nil {
		return err
	}
	w.store(cfg, entries)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	dirs, err := w.sync(fsw, nil, cfg)
	if err != nil {
		return err
	}

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
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("config change", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			ev := w.apply()
			if ev.Config != nil {
				if dirs, err = w.sync(fsw, dirs, ev.Config); err != nil {
					return err
				}
			}
			if w.onChange != nil {
				w.onChange(ev)
			}
		}
	}
}

// apply reloads the project and records the result when it succeeds.
func (w *Watcher) apply() Event {
	cfg, entries, err := w.reload()
	if err != nil {
		w.logger.Warn("reload failed; keeping previous entries", "error", err)
		return Event{Err: err}
	}

	_, prev := w.Current()
	ev := Event{Config: cfg, Entries: entries, Diff: artpack.DiffEntries(prev, entries)}
	w.store(cfg, entries)

	w.logger.Info("entries reloaded",
		"entries", entries.Len(),
		"added", len(ev.Diff.Added),
		"removed", len(ev.Diff.Removed),
		"changed", len(ev.Diff.Changed))
	return ev
}

func (w *Watcher) reload() (*config.Config, *artpack.EntryMap, error) {
	cfg, err := w.load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	entries, err := w.resolve(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve entries: %w", err)
	}
	return cfg, entries, nil
}

func (w *Watcher) store(cfg *config.Config, entries *artpack.EntryMap) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
	w.entries = entries
}

// sync makes fsw watch exactly the directories cfg is read from.
func (w *Watcher) sync(fsw *fsnotify.Watcher, current []string, cfg *config.Config) ([]string, error) {
	want := WatchDirs(cfg)
	for _, dir := range current {
		if !slices.Contains(want, dir) {
			if err := fsw.Remove(dir); err != nil {
				w.logger.Debug("unwatch failed", "dir", dir, "error", err)
			}
		}
	}
	for _, dir := range want {
		if slices.Contains(current, dir) {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching", "dir", dir)
	}
	return want, nil
}

// relevant reports whether event touches a file the configuration is or
// could be read from.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	cfg, _ := w.Current()
	return IsConfigFile(cfg, event.Name)
}

// WatchDirs returns the sorted directories to observe for cfg: the project
// root plus the directories of its config and .env files.
func WatchDirs(cfg *config.Config) []string {
	dirs := []string{filepath.Clean(cfg.WorkDir)}
	for _, src := range cfg.Sources() {
		dir := filepath.Dir(src)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// IsConfigFile reports whether name is one of cfg's sources, or a file in
// the project root that Load would pick up.
func IsConfigFile(cfg *config.Config, name string) bool {
	name = filepath.Clean(name)
	if cfg == nil {
		return false
	}
	if slices.Contains(cfg.Sources(), name) {
		return true
	}
	if filepath.Dir(name) != filepath.Clean(cfg.WorkDir) {
		return false
	}
	base := filepath.Base(name)
	return base == config.DotEnvFile || slices.Contains(config.ConfigFileNames, base)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
