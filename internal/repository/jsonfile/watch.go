package jsonfile

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watch calls onChange whenever the collection file is changed by something other than this store.  Bursts of
// events are coalesced.  Blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself because atomic writes replace the file.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log.Info("Watching collection file for changes", "path", s.path)

	debounce := time.NewTicker(time.Hour)
	debounce.Stop()
	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(watchDebounce)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Trace("Collection file event", "op", ev.Op.String())
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher error", "error", err)
		case <-debounce.C:
			debounce.Stop()
			if s.changedExternally() {
				log.Info("Collection file changed on disk", "path", s.path)
				onChange()
			}
		}
	}
}

// changedExternally reports whether the file differs from what this store last read or wrote
func (s *Store) changedExternally() bool {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		log.Warn("Unable to read collection file after change", "path", s.path, "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := sha256.Sum256(data)
	if sum == s.lastSum {
		return false
	}
	s.lastSum = sum
	return true
}
