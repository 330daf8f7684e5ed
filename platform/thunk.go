package platform

import (
	"fmt"
	"reflect"
)

// Defer wraps a typed computation as a Thunk. The wrapped function
// keeps its own closure semantics: every invocation of the thunk
// re-runs it.
func Defer[T any](fn func() T) Thunk {
	return func() any { return fn() }
}

// RunThrough routes a typed computation through the delegate's
// WithReturn operation and asserts the passthrough type on the way
// back out. A delegate returning anything other than the thunk's own
// result type violates the WithReturn contract; there is no recovery,
// so the assertion panics.
func RunThrough[T any](delegate Delegate, owner Owner, fn func() T) T {
	result := delegate.WithReturn(owner, Defer(fn))
	typed, ok := result.(T)
	if !ok {
		// %T of the zero value prints <nil> for interface types, so
		// name the expected type through reflection instead.
		panic(fmt.Sprintf("platform: WithReturn returned %T, expected %s",
			result, reflect.TypeFor[T]()))
	}
	return typed
}
