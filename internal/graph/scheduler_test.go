package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRunnable struct {
	id  uint64
	run func() error
}

func (f *fakeRunnable) ID() uint64 { return f.id }
func (f *fakeRunnable) Run() error { return f.run() }

func TestScheduler_flushRunsQueuedOnce(t *testing.T) {
	s := NewScheduler()
	runs := 0
	r := &fakeRunnable{id: 1, run: func() error { runs++; return nil }}

	s.Register(r)
	s.Enqueue(r)
	s.Enqueue(r) // idempotent

	err := s.Flush()
	assert.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestScheduler_runCanEnqueueFurtherWatches(t *testing.T) {
	s := NewScheduler()

	var second *fakeRunnable
	first := &fakeRunnable{id: 1}
	second = &fakeRunnable{id: 2, run: func() error { return nil }}
	first.run = func() error {
		s.Enqueue(second)
		return nil
	}

	s.Register(first)
	s.Register(second)
	s.Enqueue(first)

	err := s.Flush()
	assert.NoError(t, err)
}

func TestScheduler_destroyDropsQueuedRun(t *testing.T) {
	s := NewScheduler()
	ran := false
	r := &fakeRunnable{id: 1, run: func() error { ran = true; return nil }}

	s.Register(r)
	s.Enqueue(r)
	s.Destroy(r.ID())

	err := s.Flush()
	assert.NoError(t, err)
	assert.False(t, ran)
}

func TestScheduler_onErrorReceivesCallbackFailure(t *testing.T) {
	s := NewScheduler()
	want := errors.New("callback exploded")
	r := &fakeRunnable{id: 1, run: func() error { return want }}

	var got error
	s.OnError = func(err error) { got = err }

	s.Register(r)
	s.Enqueue(r)
	_ = s.Flush()

	assert.ErrorIs(t, got, want)
}

func TestScheduler_onFlushReportsRunCount(t *testing.T) {
	s := NewScheduler()
	a := &fakeRunnable{id: 1, run: func() error { return nil }}
	b := &fakeRunnable{id: 2, run: func() error { return nil }}

	var runs int
	s.OnFlush = func(n int) { runs = n }

	s.Register(a)
	s.Register(b)
	s.Enqueue(a)
	s.Enqueue(b)
	_ = s.Flush()

	assert.Equal(t, 2, runs)
}

func TestScheduler_reset(t *testing.T) {
	s := NewScheduler()
	r := &fakeRunnable{id: 1, run: func() error { return nil }}
	s.Register(r)
	s.Enqueue(r)

	s.Reset()

	assert.Empty(t, s.active)
	assert.Empty(t, s.queued)
	assert.Empty(t, s.order)
}

func TestScheduler_tooManyIterationsIsBounded(t *testing.T) {
	s := NewScheduler()

	var self *fakeRunnable
	self = &fakeRunnable{id: 1}
	self.run = func() error {
		s.Enqueue(self)
		return nil
	}

	s.Register(self)
	s.Enqueue(self)

	err := s.Flush()
	assert.ErrorIs(t, err, ErrTooManyFlushIterations)
}
