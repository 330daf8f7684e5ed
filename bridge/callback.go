package bridge

import (
	"sync/atomic"

	"github.com/robbyt/go-intercept/platform"
)

// Method selectors for the foreign dispatch function. Selectors are
// 1-indexed; selector 0 tells the foreign side to release the handle.
const (
	MethodFree uint32 = iota
	MethodWithReturn
	MethodStringSaver
	MethodWithCounter
)

// Callback is the native representation of the foreign dispatch
// function. One Callback serves every delegate instance registered for
// the capability: the handle keys into the foreign side's handle map
// to locate the instance, and the method selector picks the
// interception operation.
//
// There is no error channel. A failure inside the foreign side panics
// through the Callback and out of the calling core method, matching
// the rest of the protocol.
type Callback func(handle uint64, method uint32, owner platform.Owner, thunk platform.Thunk) any

// CallbackSlot holds the Callback for one capability. It is set
// exactly once, at registration time, and read on every proxied
// interception.
type CallbackSlot struct {
	callback atomic.Pointer[Callback]
}

// Set stores the callback. The registering side must call this exactly
// once per capability; a second call is an internal bug and panics.
func (s *CallbackSlot) Set(callback Callback) {
	if callback == nil {
		panic("bridge: Set called with a nil callback")
	}
	if !s.callback.CompareAndSwap(nil, &callback) {
		panic("bridge: callback slot set more than once")
	}
}

// Get returns the registered callback, or nil if none is set yet.
func (s *CallbackSlot) Get() Callback {
	p := s.callback.Load()
	if p == nil {
		return nil
	}
	return *p
}
