package snapshot

import (
	"sync"

	"github.com/rs/zerolog"
)

// AsyncPolicy moves snapshot writes off the caller's goroutine. Saves are
// queued on a buffered channel and written by one background worker.
//
// Every snapshot carries the full cache state, so when the queue is full
// the oldest pending snapshot is dropped in favor of the newest one: the
// file may briefly lag, but it converges to the latest state. Close
// drains the queue before returning.
type AsyncPolicy struct {
	file   *File
	logger zerolog.Logger
	ch     chan *Snapshot
	wg     sync.WaitGroup
}

// NewAsyncPolicy creates an asynchronous save policy with the given queue
// depth. A depth below 1 is raised to 1.
func NewAsyncPolicy(file *File, buffer int, logger zerolog.Logger) *AsyncPolicy {
	if buffer < 1 {
		buffer = 1
	}
	p := &AsyncPolicy{
		file:   file,
		logger: logger,
		ch:     make(chan *Snapshot, buffer),
	}

	p.wg.Add(1)
	go p.worker()

	return p
}

// Save queues the snapshot without blocking. Under pressure the oldest
// queued snapshot is discarded so the newest state wins.
func (p *AsyncPolicy) Save(s *Snapshot) {
	for {
		select {
		case p.ch <- s:
			return
		default:
		}

		// Queue full: drop one stale snapshot and retry.
		select {
		case <-p.ch:
		default:
		}
	}
}

func (p *AsyncPolicy) worker() {
	defer p.wg.Done()

	for s := range p.ch {
		if err := p.file.Save(s); err != nil {
			p.logger.Warn().Err(err).Str("path", p.file.Path()).Msg("snapshot save failed")
		}
	}
}

// Close stops accepting snapshots and waits until everything queued has
// been written.
func (p *AsyncPolicy) Close() {
	close(p.ch)
	p.wg.Wait()
}
