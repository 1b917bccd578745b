package credentials

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultWatchDebounce collapses the create+write+rename burst produced by
// one FileSlot.Save into a single notification.
const defaultWatchDebounce = 200 * time.Millisecond

// Watch calls onChange whenever the session file of slot is created,
// rewritten or removed by anyone, including other processes. It blocks
// until ctx is done.
//
// The parent directory is watched rather than the file itself, because the
// file is replaced by rename on every save.
func Watch(ctx context.Context, slot *FileSlot, onChange func(), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create session watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(slot.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", slot.dir, err)
	}

	target := filepath.Clean(slot.Path())
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	logger.Debug("Watching session file", "path", target)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(defaultWatchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Session watcher error", "error", err.Error())
		}
	}
}
