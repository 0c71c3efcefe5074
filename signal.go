package reactive

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/signalgraph/reactive/internal/graph"
	"github.com/signalgraph/reactive/internal/rlog"
)

// Signal is a writable producer: the only node variant that is
// purely a producer, never a consumer.
type Signal[T any] struct {
	node *graph.Node
	rt   *graph.Runtime

	id       string
	log      bool
	equal    EqualFunc[T]
	onChange func(T)

	value T

	readonly *ReadonlySignal[T]
}

// New creates a writable signal with an initial value.
func New[T any](initial T, opts ...Options[T]) *Signal[T] {
	var o Options[T]
	if len(opts) > 0 {
		o = opts[0]
	}

	s := &Signal[T]{
		rt:       graph.GetRuntime(),
		value:    initial,
		id:       resolveID(o.ID),
		log:      o.Log,
		equal:    o.Equal,
		onChange: o.OnChange,
	}
	if s.equal == nil {
		s.equal = defaultEqual[T]
	}

	s.node = s.rt.NewNode()
	s.node.SetValueChangedSince(func(seen uint64) bool {
		return s.node.ValueVersion() != seen
	})

	if s.log {
		rlog.Trace(rlog.TagSignal, "signal[%s] created, initial=%v", s.id, initial)
	}

	return s
}

// Read returns the current value of the signal, recording a dependency
// edge if called from within a tracked computation.
func (s *Signal[T]) Read() T {
	if err := s.node.RecordAccess(s.rt); err != nil {
		panic(err)
	}
	return s.value
}

// Set replaces the signal's value. A no-op (no notification, no OnChange)
// if Equal reports the new value equal to the current one.
func (s *Signal[T]) Set(v T) {
	if s.equal(s.value, v) {
		return
	}

	s.value = v
	s.node.BumpValueVersion()
	s.node.NotifyConsumers(s.rt)

	if s.log {
		rlog.Trace(rlog.TagSignal, "signal[%s] set -> %v", s.id, v)
	}

	if s.onChange != nil {
		s.onChange(v)
	}
}

// Update replaces the value with f applied to the current value.
func (s *Signal[T]) Update(f func(T) T) {
	s.Set(f(s.value))
}

// Mutate runs f against a pointer to the value in place. Always bumps the
// version and notifies; no equality check.
func (s *Signal[T]) Mutate(f func(*T)) {
	f(&s.value)
	s.node.BumpValueVersion()
	s.node.NotifyConsumers(s.rt)

	if s.log {
		rlog.Trace(rlog.TagSignal, "signal[%s] mutated -> %v", s.id, s.value)
	}

	if s.onChange != nil {
		s.onChange(s.value)
	}
}

// Untracked reads the signal without recording a dependency, even if
// called from within a tracked computation.
func (s *Signal[T]) Untracked() T {
	var v T
	s.rt.RunUntracked(func() { v = s.Read() })
	return v
}

// AsReadonly returns a read-only adapter over this signal. Identity is
// stable: calling AsReadonly twice returns the same instance, so memoized
// derived state built over the readonly view keeps working.
func (s *Signal[T]) AsReadonly() *ReadonlySignal[T] {
	if s.readonly == nil {
		s.readonly = &ReadonlySignal[T]{source: s}
	}
	return s.readonly
}

func defaultEqual[T any](a, b T) bool {
	av, bv := any(a), any(b)

	at := reflect.TypeOf(av)
	if at == nil {
		return bv == nil
	}
	switch at.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return av == bv
	}
	return false
}

func resolveID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
