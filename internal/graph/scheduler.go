package graph

import (
	"sync"
	"time"

	"github.com/signalgraph/reactive/internal/rlog"
)

// maxFlushIterations bounds a single flush's drain loop against a watch
// that keeps re-dirtying itself every run.
const maxFlushIterations = 100000

// Runnable is what the scheduler can enqueue and drain: a watch. Kept as
// an interface here, rather than importing the public Effect type, so the
// graph core stays variant-neutral per the package doc.
type Runnable interface {
	ID() uint64
	Run() error
}

// Scheduler batches pending watches so multiple upstream writes produce at
// most one watch run per batch. It maintains two sets: active
// (every watch the scheduler knows about, for Reset) and queued (pending
// to run in the next flush).
type Scheduler struct {
	mu sync.Mutex

	active map[uint64]Runnable

	queued map[uint64]Runnable
	order  []uint64

	draining bool
	armed    bool
	timer    *time.Timer

	// OnError receives a watch's callback failure, or the scheduler's own
	// iteration-cap error. If nil, the error is logged through internal/rlog
	// and the drain continues.
	OnError func(err error)

	// OnFlush, if set, is called after each flush with the number of
	// watch runs it performed. Lets a host framework instrument batch
	// sizes without reaching into scheduler internals.
	OnFlush func(runs int)
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		active: make(map[uint64]Runnable),
		queued: make(map[uint64]Runnable),
	}
}

// Register adds a watch to the active set. A newly created watch is also
// expected to be enqueued immediately; callers do both at construction
// time.
func (s *Scheduler) Register(r Runnable) {
	s.mu.Lock()
	s.active[r.ID()] = r
	s.mu.Unlock()
}

// Destroy removes a watch from both the active and queued sets. A
// queued-but-destroyed watch is dropped when its id is next encountered in
// Flush's drain loop.
func (s *Scheduler) Destroy(id uint64) {
	s.mu.Lock()
	delete(s.active, id)
	delete(s.queued, id)
	s.mu.Unlock()
}

// Enqueue schedules r to run on the next flush. Idempotent: if r is
// already queued, this is a no-op (reentrant notifies collapse into one
// queued run). Arms a deferred flush if none is currently pending.
func (s *Scheduler) Enqueue(r Runnable) {
	s.mu.Lock()
	if _, queued := s.queued[r.ID()]; !queued {
		s.queued[r.ID()] = r
		s.order = append(s.order, r.ID())
	}

	needsArm := !s.armed
	if needsArm {
		s.armed = true
	}
	s.mu.Unlock()

	if needsArm {
		s.deferFlush()
	}
}

// deferFlush arms a zero-delay timer. The flush runs on its own goroutine
// shortly after the enqueuing call returns, rather than inline.
func (s *Scheduler) deferFlush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(0, func() { _ = s.Flush() })
	s.mu.Unlock()
}

// Flush drains the queued set, running each watch in FIFO enqueue order.
// Runs may themselves enqueue further watches; the loop continues until
// the queue is empty. Safe to call directly without waiting for the
// deferred timer. A no-op if nothing is pending or a drain is already in
// progress on another goroutine.
func (s *Scheduler) Flush() error {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return nil
	}
	s.draining = true
	s.armed = false
	s.mu.Unlock()

	runs := 0
	var flushErr error

	for {
		s.mu.Lock()
		if len(s.order) == 0 {
			s.draining = false
			s.mu.Unlock()
			break
		}

		id := s.order[0]
		s.order = s.order[1:]
		r, ok := s.queued[id]
		if ok {
			delete(s.queued, id)
		}
		s.mu.Unlock()

		if !ok {
			// destroyed while queued; drop it.
			continue
		}

		runs++
		if runs > maxFlushIterations {
			s.mu.Lock()
			s.draining = false
			s.order = nil
			s.queued = make(map[uint64]Runnable)
			s.mu.Unlock()
			flushErr = ErrTooManyFlushIterations
			if s.OnError != nil {
				s.OnError(flushErr)
			} else {
				rlog.Error(rlog.TagScheduler, "%v", flushErr)
			}
			break
		}

		if err := r.Run(); err != nil {
			if s.OnError != nil {
				s.OnError(err)
			} else {
				rlog.Error(rlog.TagScheduler, "%v", err)
			}
		}
	}

	if s.OnFlush != nil {
		s.OnFlush(runs)
	}

	return flushErr
}

// Reset empties both the active and queued sets and cancels any pending
// deferred flush. Intended for test teardown.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.active = make(map[uint64]Runnable)
	s.queued = make(map[uint64]Runnable)
	s.order = nil
	s.draining = false
	s.armed = false
}
