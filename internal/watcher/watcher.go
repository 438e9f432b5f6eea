package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"guidesearch/internal/discovery"
)

// Watcher observes the guides folder and its topic subfolders and fires a
// callback after changes settle. It lives entirely outside the core
// pipeline; the callback typically triggers a full reindex.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	onChange func()
}

func New(root string, debounce time.Duration, logger *slog.Logger, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{root: root, debounce: debounce, logger: logger, onChange: onChange}
}

// Run blocks until ctx is cancelled, invoking the change callback after
// each debounced burst of file events.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if err := fw.Add(filepath.Join(w.root, name)); err != nil {
			w.logger.Warn("cannot watch topic folder", "path", name, "error", err)
		}
	}
	w.logger.Info("watching guides folder", "root", w.root)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("guide change detected", "event", ev.String())
			// New topic folders need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := fw.Add(ev.Name); err != nil {
						w.logger.Warn("cannot watch topic folder", "path", ev.Name, "error", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			timer = nil
			fire = nil
			w.onChange()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
		return false
	}
	if strings.EqualFold(filepath.Ext(base), discovery.GuideExt) {
		return true
	}
	// Directory events carry no extension; a removed path cannot be
	// stat'ed, so treat extension-less names as possible topic folders.
	return filepath.Ext(base) == ""
}
