package configmanager

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is the time to wait for writes to the settings file to settle before reloading.
var settle = time.Millisecond * 200

// Watch watches the settings file for changes made outside the process
// and notifies listeners of the keys that changed.
// It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	// the directory is watched as editors replace files on save
	dir := filepath.Dir(m.file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("error adding '%s' to watch directories: %w", dir, err)
	}
	m.log.Tracef("watching %s for changes", m.file)

	var reload <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if filepath.Clean(ev.Name) != filepath.Clean(m.file) {
				continue
			}
			m.log.Tracef("got event: %s, file: %s", ev.Op, ev.Name)
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				reload = time.After(settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			m.log.Tracef("watch error: %v", err)

		case <-reload:
			reload = nil
			if err := m.reload(); err != nil {
				m.log.Warnln(fmt.Errorf("error reloading settings: %w", err))
			}

		case <-ctx.Done():
			return nil
		}
	}
}
