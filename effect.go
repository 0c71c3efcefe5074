package reactive

import (
	"fmt"

	"github.com/signalgraph/reactive/internal/graph"
	"github.com/signalgraph/reactive/internal/rlog"
)

// EffectComputation is the union of the two shapes an effect's callback
// may take: a plain side effect, or one that returns its own cleanup.
type EffectComputation interface {
	func() | func() func()
}

// Effect is a watch: a consumer-only node that re-runs a callback
// when any signal it reads changes, dispatched through an
// *graph.Scheduler rather than run inline.
type Effect struct {
	node      *graph.Node
	rt        *graph.Runtime
	scheduler *graph.Scheduler

	id                string
	log               bool
	allowSignalWrites bool

	computation func() func()
	cleanup     func()

	dirty     bool
	destroyed bool
}

// NewEffect creates a watch and enqueues its first run on the next flush.
func NewEffect[T EffectComputation](computation T, opts ...EffectOptions) *Effect {
	var o EffectOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	rt := graph.GetRuntime()

	e := &Effect{
		rt:                rt,
		scheduler:         rt.Scheduler(),
		id:                resolveID(o.ID),
		log:               o.Log,
		allowSignalWrites: o.AllowSignalWrites,
		dirty:             true,
	}
	e.computation = normalizeComputation(computation)

	e.node = rt.NewNode()
	e.node.SetOnDependencyChange(e.notify)

	e.scheduler.Register(e)
	e.scheduler.Enqueue(e)

	if e.log {
		rlog.Trace(rlog.TagWatch, "watch[%s] created", e.id)
	}

	return e
}

func normalizeComputation[T EffectComputation](computation T) func() func() {
	switch fn := any(computation).(type) {
	case func():
		return func() func() {
			fn()
			return nil
		}
	case func() func():
		return fn
	}
	return func() func() { return nil }
}

// ID identifies this watch to the scheduler.
func (e *Effect) ID() uint64 { return e.node.ID() }

// notify is the push hook installed on the node: idempotent re-entries
// collapse into a single queued run, the dirty flag being set *after* the
// enqueue check so a reentrant notify during the same pass does not
// double-enqueue.
func (e *Effect) notify() {
	if !e.dirty {
		e.scheduler.Enqueue(e)
	}
	e.dirty = true
}

// Run clears dirty, skips the rerun if a revalidation shows no dependency
// actually advanced, and otherwise invokes the previous cleanup before the
// callback body and installs whatever cleanup the callback returns.
func (e *Effect) Run() error {
	if e.destroyed {
		return nil
	}

	e.dirty = false

	if e.node.TrackingVersion() != 0 && !e.node.DependenciesChanged() {
		return nil
	}

	var runErr error
	e.node.RunTracked(e.rt, func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = toCallbackError(r)
			}
		}()

		if e.cleanup != nil {
			prev := e.cleanup
			e.cleanup = nil
			prev()
		}

		e.cleanup = e.computation()
	})

	if e.log {
		if runErr != nil {
			rlog.Trace(rlog.TagWatch, "watch[%s] callback failed: %v", e.id, runErr)
		} else {
			rlog.Trace(rlog.TagWatch, "watch[%s] ran", e.id)
		}
	}

	return runErr
}

// Destroy runs the current cleanup, severs this watch's dependency edges,
// and removes it from the scheduler's active and queued sets. Future
// notifies on producers this watch used to depend on are pruned lazily
// (I4); a queued-but-destroyed watch is dropped when Flush next reaches
// it.
func (e *Effect) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if e.cleanup != nil {
		prev := e.cleanup
		e.cleanup = nil
		prev()
	}

	e.node.ClearProducers()
	e.scheduler.Destroy(e.node.ID())

	if e.log {
		rlog.Trace(rlog.TagWatch, "watch[%s] destroyed", e.id)
	}
}

func toCallbackError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("reactive: effect callback: %w", err)
	}
	return fmt.Errorf("reactive: effect callback: %v", r)
}
