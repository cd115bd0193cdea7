package watcher

import (
	"context"
	"sort"
	"time"

	"github.com/openpathway/pathway-analyzer/pkg/logging"
)

// Debouncer batches rapid file system events to avoid excessive re-analysis.
// Unpacking an archive into the data folder touches hundreds of files in a
// burst; the whole burst should trigger one re-run.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. quietPeriod is how long the
// input must stay silent before a flush; maxWait caps how long a steady
// stream of changes can postpone it.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run accumulates paths until the quiet period elapses or maxWait forces a
// flush. Paths are deduplicated and sorted, repeated writes to the same
// file collapse into one entry.
func (d *Debouncer) run(ctx context.Context) {
	quiet := time.NewTimer(d.quietPeriod)
	quiet.Stop()
	maxWait := time.NewTimer(d.maxWait)
	maxWait.Stop()

	pending := make(map[string]bool)
	armed := false

	flush := func() {
		quiet.Stop()
		maxWait.Stop()
		armed = false

		if len(pending) == 0 {
			return
		}
		logging.Debug("flushing accumulated changes", "files", len(pending))

		paths := make([]string, 0, len(pending))
		for path := range pending {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		pending = make(map[string]bool)

		d.output <- ChangeEvent{Paths: paths, Timestamp: time.Now()}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			for _, path := range event.Paths {
				pending[path] = true
			}

			quiet.Reset(d.quietPeriod)
			if !armed {
				// maxWait runs from the first change after a flush
				maxWait.Reset(d.maxWait)
				armed = true
			}

		case <-quiet.C:
			flush()

		case <-maxWait.C:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
