package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/logging"
)

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a pathway data folder for file changes. Only files a
// registered source recognizes produce events; editor temp files and
// unrelated downloads in the folder stay invisible.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	dataDir string
	sources []analyze.Source
	events  chan ChangeEvent
	log     *slog.Logger
}

// NewFileWatcher creates a new file system watcher over the data folder
func NewFileWatcher(dataDir string, sources []analyze.Source) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		dataDir: dataDir,
		sources: sources,
		events:  make(chan ChangeEvent, 100),
		log:     logging.New("watcher"),
	}

	return fw, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	// The provider dumps unpack flat, one directory is enough
	if err := fw.watcher.Add(fw.dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.dataDir, err)
	}

	fw.log.Info("started watching data folder", "path", fw.dataDir)

	go fw.processEvents(ctx)

	return nil
}

// processEvents batches raw notifications so one saved file does not emit
// an event per write syscall
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)

	var pending []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		fw.events <- ChangeEvent{Paths: pending, Timestamp: time.Now()}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				flush()
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := analyze.DetectSource(event.Name, fw.sources); !ok {
				continue
			}

			pending = append(pending, event.Name)
			flushTimer.Reset(100 * time.Millisecond)

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	return fw.watcher.Close()
}
