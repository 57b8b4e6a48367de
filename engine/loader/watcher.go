package loader

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// reloadOps are the events that mean a file's contents changed. Editors that save through a
// temporary file produce Create (or Rename onto the target) rather than Write.
const reloadOps = fsnotify.Write | fsnotify.Create

func (l *loader) Watch() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.watcher != nil {
		l.mu.Unlock()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.watcher = w

	dirs := make(map[string]bool)
	for path := range l.textures {
		dirs[filepath.Dir(path)] = true
	}
	l.mu.Unlock()

	for dir := range dirs {
		if err := l.watchDir(dir); err != nil {
			slog.Warn("cannot watch texture directory", "component", "loader", "dir", dir, "error", err)
		}
	}

	l.wg.Add(1)
	go l.watchLoop(w)
	return nil
}

// watchDir adds dir to the watcher once. It is a no-op while watching is off.
func (l *loader) watchDir(dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher == nil || l.watched[dir] {
		return nil
	}
	if err := l.watcher.Add(dir); err != nil {
		return err
	}
	l.watched[dir] = true
	return nil
}

func (l *loader) watchLoop(w *fsnotify.Watcher) {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&reloadOps == 0 {
				continue
			}
			l.mu.RLock()
			t, tracked := l.textures[filepath.Clean(event.Name)]
			l.mu.RUnlock()
			if !tracked {
				continue
			}
			slog.Info("texture changed on disk", "component", "loader", "path", t.path, "op", event.Op.String())
			l.submit(t)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("texture watcher error", "component", "loader", "error", err)
		}
	}
}

func (l *loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.stop)
	w := l.watcher
	l.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	l.wg.Wait()
	return err
}
