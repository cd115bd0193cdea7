package watcher

import (
	"context"
	"time"

	"github.com/openpathway/pathway-analyzer/pkg/analyze"
	"github.com/openpathway/pathway-analyzer/pkg/logging"
)

// Default debounce tuning for watch mode.
const (
	DefaultQuietPeriod = 500 * time.Millisecond
	DefaultMaxWait     = 5 * time.Second
)

// Watch wires watcher and debouncer together and invokes onChange for every
// debounced batch. The statistics accumulator is rebuilt from the whole
// folder on every run, so a batch always maps to one full re-analysis.
// Blocks until ctx is cancelled or the watcher fails.
func Watch(ctx context.Context, dataDir string, sources []analyze.Source, onChange func(ChangeEvent)) error {
	fw, err := NewFileWatcher(dataDir, sources)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		fw.Stop()
		return err
	}

	debouncer := NewDebouncer(fw.Events(), DefaultQuietPeriod, DefaultMaxWait)
	debouncer.Start(ctx)

	log := logging.New("watcher")
	for event := range debouncer.Output() {
		log.Info("files changed, re-running analysis",
			"files", len(event.Paths), "breakdown", Summarize(event, sources))
		onChange(event)
	}
	return nil
}

// Summarize counts the changed files per source format, for status logging.
func Summarize(event ChangeEvent, sources []analyze.Source) map[string]int {
	counts := make(map[string]int)
	for _, path := range event.Paths {
		if source, ok := analyze.DetectSource(path, sources); ok {
			counts[source.Name()]++
		} else {
			counts["unknown"]++
		}
	}
	return counts
}
