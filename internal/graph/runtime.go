package graph

// Runtime holds the ambient, per-execution-context state: the active
// consumer slot, the notifying flag, and the id counter. The engine is
// single-threaded cooperative: a Runtime must never be shared across
// goroutines concurrently. GetRuntime (in runtime_default.go /
// runtime_wasm.go) keys one Runtime per goroutine so callers never have to
// thread one through explicitly.
type Runtime struct {
	// nextID is the monotone counter handed out by NewNode.
	nextID uint64

	// activeConsumer names the consumer whose tracking pass is currently
	// running, or nil.
	activeConsumer *Node

	// notifying is set while invalidation is propagating (NotifyConsumers).
	notifying bool

	scheduler *Scheduler
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

// Scheduler returns this runtime's effect scheduler, creating it on first
// use. Every watch created against a given Runtime shares the same
// scheduler, so writes on one goroutine's graph batch together regardless
// of which watch they end up dirtying.
func (rt *Runtime) Scheduler() *Scheduler {
	if rt.scheduler == nil {
		rt.scheduler = NewScheduler()
	}
	return rt.scheduler
}

// ActiveConsumer returns the consumer currently running a tracked pass,
// or nil. Exposed for tests.
func (rt *Runtime) ActiveConsumer() *Node { return rt.activeConsumer }

// IsNotifying reports whether the runtime is currently inside
// NotifyConsumers.
func (rt *Runtime) IsNotifying() bool { return rt.notifying }

// RunUntracked runs fn with the active consumer cleared, so any producer
// reads inside fn do not record a dependency edge. The previous active
// consumer is restored on every exit path, including panic.
func (rt *Runtime) RunUntracked(fn func()) {
	prev := rt.activeConsumer
	rt.activeConsumer = nil
	defer func() { rt.activeConsumer = prev }()

	fn()
}
