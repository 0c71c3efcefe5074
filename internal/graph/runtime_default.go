//go:build !wasm

package graph

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map // goroutine id (int64) -> *Runtime

// GetRuntime returns the Runtime for the calling goroutine, creating one on
// first use. Keying per-goroutine (rather than a single process-wide
// global) is how this engine satisfies the single-threaded-cooperative
// requirement without forcing every call site to thread a *Runtime
// explicitly: two goroutines each get their own isolated active-consumer
// slot and id space, so a graph built on one goroutine can never be
// concurrently mutated by another.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}
