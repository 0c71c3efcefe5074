package reactive

// EqualFunc compares two values of a signal for coalescing Set/recompute.
// An optional user-supplied comparison, not required to be total or even
// well-behaved beyond reflexivity.
type EqualFunc[T any] func(a, b T) bool

// Options configures a writable signal or memo. Every field is optional;
// the zero value picks sensible defaults.
type Options[T any] struct {
	// ID tags the node for debug tracing. If empty, one is minted with
	// uuid.NewString() when the node is constructed.
	ID string

	// Log enables trace-level logging of this node's lifecycle (creation,
	// recomputes, writes) through
	// internal/rlog, gated further by the process-wide log level/category
	// switches (REACTIVE_LOG_LEVEL, REACTIVE_LOG_CATEGORIES).
	Log bool

	// Equal overrides the default equality used to decide whether a Set
	// or a memo recompute actually changed the value. By default, values
	// of a basic kind (booleans, numbers, strings) compare with ==, and
	// any other value (struct, array, pointer, slice, map, ...) is always
	// treated as changed, so writes of compound values always register
	// (see defaultEqual in signal.go).
	Equal EqualFunc[T]

	// OnChange, if set, is called after a committed Set/Update/Mutate
	// (for a signal) or after a committed recompute (for a memo), with
	// the new value. It fires after consumer notification and before the
	// triggering call returns to its caller.
	OnChange func(v T)
}

// EffectOptions configures a watch/effect.
type EffectOptions struct {
	// ID tags the effect for debug tracing.
	ID string

	// Log enables trace-level logging of this effect's lifecycle.
	Log bool

	// AllowSignalWrites permits the effect's callback to write to signals.
	// The graph does not enforce this (nothing stops a callback from
	// calling Set regardless); it exists so hosts that want to police the
	// convention can inspect it, and so the façade's own tests can assert
	// intent at the call site.
	AllowSignalWrites bool
}
