package graph

import "errors"

// ErrReadDuringNotify is returned when a producer is read while the runtime
// is propagating invalidation (I5: no read during notify).
var ErrReadDuringNotify = errors.New("graph: read during notify propagation")

// ErrCycleDetected is returned when a memo's recompute reenters itself
// while still Computing.
var ErrCycleDetected = errors.New("graph: cycle detected during recompute")

// ErrTooManyFlushIterations guards against a scheduler drain that never
// settles (a watch that keeps re-dirtying itself every run).
var ErrTooManyFlushIterations = errors.New("graph: possible infinite update loop detected")
