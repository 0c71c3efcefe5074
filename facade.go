package reactive

import "github.com/signalgraph/reactive/internal/graph"

// signaler is the unexported marker every node-backed public type in this
// package implements, used only so IsSignal can recognize them without an
// exported, type-erased reactive-node interface leaking into the API.
type signaler interface {
	isSignalNode()
}

func (s *Signal[T]) isSignalNode()         {}
func (r *ReadonlySignal[T]) isSignalNode() {}
func (m *Memo[T]) isSignalNode()           {}

// IsSignal reports whether x is a signal, readonly signal, or memo
// produced by this package.
func IsSignal(x any) bool {
	_, ok := x.(signaler)
	return ok
}

// ReadonlySignal narrows a Signal to Read/Untracked only.
// It shares the underlying node with its source, so tracking and
// notification behave identically to reading the source directly.
type ReadonlySignal[T any] struct {
	source *Signal[T]
}

// Read returns the current value, tracking a dependency if called from a
// tracked computation.
func (r *ReadonlySignal[T]) Read() T { return r.source.Read() }

// Untracked reads the value without recording a dependency.
func (r *ReadonlySignal[T]) Untracked() T { return r.source.Untracked() }

// Untracked runs fn with dependency tracking suspended for the duration,
// regardless of the ambient active consumer, restoring it afterward even
// if fn panics.
func Untracked[T any](fn func() T) T {
	rt := graph.GetRuntime()
	var v T
	rt.RunUntracked(func() { v = fn() })
	return v
}

// Flush synchronously drains the calling goroutine's pending watch runs, so
// tests (and hosts with their own render loop) do not have to wait on the
// deferred zero-delay timer. Safe to call even if a deferred flush is also
// armed: whichever reaches the queue first drains it, the other becomes a
// no-op.
func Flush() error {
	return graph.GetRuntime().Scheduler().Flush()
}
