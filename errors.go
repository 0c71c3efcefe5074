package reactive

import (
	"fmt"

	"github.com/signalgraph/reactive/internal/graph"
)

// ErrCycleDetected is returned by a memo's Get when its recompute
// reentered itself while already Computing.
var ErrCycleDetected = graph.ErrCycleDetected

// ErrReadDuringNotify is returned, or panicked with for Signal.Read, when
// a node is read while the runtime is propagating invalidation.
var ErrReadDuringNotify = graph.ErrReadDuringNotify

// toComputeError wraps a memo compute panic as a UserComputeFailure,
// preserving the original cause for errors.Is/As.
func toComputeError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("reactive: compute: %w", err)
	}
	return fmt.Errorf("reactive: compute: %v", r)
}
