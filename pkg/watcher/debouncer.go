package watcher

import (
	"context"
	"slices"
	"time"

	"github.com/ritzau/pivot-slicer/pkg/logging"
)

// Debouncer batches rapid file system events so a burst of writes causes
// a single reload
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. A batch is emitted after
// quietPeriod without events, or maxWait after its first event.
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

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		batch  *ChangeEvent
		quietC <-chan time.Time
		maxC   <-chan time.Time
	)

	flush := func(block bool) {
		if batch == nil {
			return
		}
		logging.Debug("flushing accumulated events", "count", batch.Count, "type", batch.Type.String())
		if block {
			d.output <- *batch
		} else {
			select {
			case d.output <- *batch:
			default:
				logging.Warn("dropping change batch on shutdown", "count", batch.Count)
			}
		}
		batch = nil
		quietC = nil
		maxC = nil
	}

	for {
		select {
		case <-ctx.Done():
			flush(false)
			return

		case event, ok := <-d.input:
			if !ok {
				flush(false)
				return
			}
			if batch == nil {
				batch = &ChangeEvent{}
				maxC = time.After(d.maxWait)
			}
			// The latest event decides what the batch means
			batch.Type = event.Type
			batch.Timestamp = event.Timestamp
			batch.Count += max(event.Count, 1)
			for _, p := range event.Paths {
				if !slices.Contains(batch.Paths, p) {
					batch.Paths = append(batch.Paths, p)
				}
			}
			quietC = time.After(d.quietPeriod)

		case <-quietC:
			flush(true)

		case <-maxC:
			flush(true)
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
