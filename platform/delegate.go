package platform

// Thunk is a deferred, zero-argument computation. Whoever holds the
// thunk decides whether and how many times it runs; each invocation
// re-runs the underlying computation in full, with no memoization.
type Thunk func() any

// Owner identifies the object on whose behalf an interception runs.
// Delegates may use it to apply per-object policy.
type Owner interface {
	String() string
}

// Delegate is the capability contract implemented on the foreign side
// of the boundary. A core object never runs its own computation
// directly: it packages the method body as a Thunk and hands it to one
// of these operations, which controls execution and owns the result.
//
// Delegate state (the counter, the last-observed-string slot) belongs
// to the delegate instance, not to any one owner. Several owners may
// share a delegate, and its state accumulates across all of them.
//
// None of the operations has an error channel. A failing thunk, or a
// failing delegate, panics through the operation and out of the owning
// method unmodified. The protocol is synchronous and single-threaded;
// concurrent invocation is undefined.
type Delegate interface {
	// WithReturn invokes the thunk exactly once and returns its result
	// unchanged, preserving the dynamic type.
	WithReturn(owner Owner, thunk Thunk) any

	// StringSaver invokes the thunk exactly once. A string result
	// overwrites the delegate's last-observed-string slot; any other
	// result type leaves the slot unchanged.
	StringSaver(owner Owner, thunk Thunk)

	// WithCounter invokes the thunk exactly once, discards its result,
	// increments the delegate's running counter, and returns the new
	// counter value.
	WithCounter(owner Owner, thunk Thunk) int
}
