package reactive

import (
	"context"
	"sync"
)

// PromiseStatus enumerates the states a FromPromise signal moves through.
type PromiseStatus int

const (
	PromisePending PromiseStatus = iota
	PromiseFulfilled
	PromiseRejected
)

// PromiseState is the value a FromPromise signal holds: exactly one of
// pending, fulfilled-with-a-value, or rejected-with-an-error.
type PromiseState[T any] struct {
	Status PromiseStatus
	Value  T
	Err    error
}

// FromPromise adapts a single-shot async producer into a Signal that
// starts Pending and transitions to Fulfilled or Rejected exactly once.
// The producer runs on its own goroutine; the transition is delivered via
// Mutate.
//
// Cancel ctx to abandon the producer. The signal still receives whatever
// the producer returns, including a context.Canceled error.
func FromPromise[T any](ctx context.Context, produce func(context.Context) (T, error)) *Signal[PromiseState[T]] {
	sig := New(PromiseState[T]{Status: PromisePending})

	var once sync.Once
	go func() {
		v, err := produce(ctx)
		once.Do(func() {
			sig.Mutate(func(s *PromiseState[T]) {
				if err != nil {
					s.Status = PromiseRejected
					s.Err = err
					return
				}
				s.Status = PromiseFulfilled
				s.Value = v
			})
		})
	}()

	return sig
}
