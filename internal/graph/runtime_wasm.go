//go:build wasm

package graph

import "sync"

// wasm builds run on a single OS thread with no real goroutine concurrency
// worth isolating against, and petermattis/goid does not support
// GOOS=js/wasm, so this build keeps a single process-wide Runtime instead.
var (
	once     sync.Once
	instance *Runtime
)

func GetRuntime() *Runtime {
	once.Do(func() {
		instance = NewRuntime()
	})
	return instance
}
