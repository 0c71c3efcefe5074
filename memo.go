package reactive

import (
	"github.com/signalgraph/reactive/internal/graph"
	"github.com/signalgraph/reactive/internal/rlog"
)

type cacheState int

const (
	cacheUnset cacheState = iota
	cacheComputing
	cacheValue
	cacheError
)

// Memo is a memoized (derived) signal: simultaneously a consumer of
// its inputs and a producer to its own readers. It computes lazily, caches
// the result, invalidates on upstream notify, and revalidates on read by
// version comparison rather than by re-running its compute function on
// every notification.
type Memo[T any] struct {
	node *graph.Node
	rt   *graph.Runtime

	id       string
	log      bool
	equal    EqualFunc[T]
	onChange func(T)

	compute func() T

	state cacheState
	value T
	err   error
	stale bool
}

// NewMemo creates a memo from a compute function. The memo starts Unset
// and stale; its first Get triggers the first recompute.
func NewMemo[T any](compute func() T, opts ...Options[T]) *Memo[T] {
	var o Options[T]
	if len(opts) > 0 {
		o = opts[0]
	}

	m := &Memo[T]{
		rt:       graph.GetRuntime(),
		id:       resolveID(o.ID),
		log:      o.Log,
		equal:    o.Equal,
		onChange: o.OnChange,
		compute:  compute,
		state:    cacheUnset,
		stale:    true,
	}
	if m.equal == nil {
		m.equal = defaultEqual[T]
	}

	m.node = m.rt.NewNode()
	m.node.SetOnDependencyChange(m.onDependencyChange)
	m.node.SetValueChangedSince(m.valueChangedSince)

	if m.log {
		rlog.Trace(rlog.TagMemo, "memo[%s] created", m.id)
	}

	return m
}

// Get validates, records a dependency edge on the calling tracked
// computation, and returns the cached value or the cached compute error.
func (m *Memo[T]) Get() (T, error) {
	if err := m.validate(); err != nil {
		var zero T
		return zero, err
	}

	if err := m.node.RecordAccess(m.rt); err != nil {
		var zero T
		return zero, err
	}

	if m.state == cacheError {
		var zero T
		return zero, m.err
	}

	return m.value, nil
}

// Untracked reads the memo without recording a dependency.
func (m *Memo[T]) Untracked() (T, error) {
	var v T
	var err error
	m.rt.RunUntracked(func() { v, err = m.Get() })
	return v, err
}

// validate is the pull side of revalidation: it only recomputes
// when stale, and a stale-but-still-Value cache whose dependencies have
// not actually advanced is cleared back to not-stale without recomputing.
func (m *Memo[T]) validate() error {
	if !m.stale {
		return nil
	}

	if m.state == cacheValue && !m.node.DependenciesChanged() {
		m.stale = false
		return nil
	}

	return m.recompute()
}

// recompute re-runs the compute function under tracking, detects
// reentrant cycles, caches the result (or the panic, as a
// UserComputeFailure), and applies the glitch-free rule: a recomputation
// that lands on a value equal to the previous one keeps the old cached
// value and does not bump valueVersion, so downstream consumers never see
// a spurious change.
func (m *Memo[T]) recompute() error {
	if m.state == cacheComputing {
		return ErrCycleDetected
	}

	prevState := m.state
	prevValue := m.value

	m.state = cacheComputing

	var newValue T
	var newErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				newErr = toComputeError(r)
			}
		}()
		m.node.RunTracked(m.rt, func() {
			newValue = m.compute()
		})
	}()

	m.stale = false

	if newErr != nil {
		m.state = cacheError
		m.err = newErr
		m.node.BumpValueVersion()

		if m.log {
			rlog.Trace(rlog.TagMemo, "memo[%s] compute failed: %v", m.id, newErr)
		}

		return nil
	}

	if prevState == cacheValue && m.equal(prevValue, newValue) {
		m.state = cacheValue
		m.value = prevValue
		m.err = nil

		if m.log {
			rlog.Trace(rlog.TagMemo, "memo[%s] recomputed, value unchanged", m.id)
		}

		return nil
	}

	m.state = cacheValue
	m.value = newValue
	m.err = nil
	m.node.BumpValueVersion()

	if m.log {
		rlog.Trace(rlog.TagMemo, "memo[%s] recomputed -> %v", m.id, newValue)
	}

	if m.onChange != nil {
		m.onChange(newValue)
	}

	return nil
}

// onDependencyChange is the push hook. Marks the memo stale and forwards
// the notification downstream; a no-op if already stale.
func (m *Memo[T]) onDependencyChange() {
	if m.stale {
		return
	}
	m.stale = true
	m.node.NotifyConsumers(m.rt)
}

// valueChangedSince is the gate downstream consumers use during
// DependenciesChanged: it validates (possibly recomputing) before
// answering, so a downstream read always sees an up-to-date comparison.
func (m *Memo[T]) valueChangedSince(seen uint64) bool {
	if m.node.ValueVersion() != seen {
		return true
	}

	_ = m.validate()

	return m.node.ValueVersion() != seen
}
