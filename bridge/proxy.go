package bridge

import "github.com/robbyt/go-intercept/platform"

// Proxy is the native-side stand-in for a foreign delegate instance.
// It implements platform.Delegate by forwarding every interception
// through the capability's registered Callback, identified by handle.
// The foreign instance itself never crosses the boundary.
type Proxy struct {
	handle uint64
	slot   *CallbackSlot
}

// NewProxy creates a Proxy for the given handle, dispatching through
// the given slot's callback.
func NewProxy(slot *CallbackSlot, handle uint64) *Proxy {
	return &Proxy{
		handle: handle,
		slot:   slot,
	}
}

func (p *Proxy) call(method uint32, owner platform.Owner, thunk platform.Thunk) any {
	callback := p.slot.Get()
	if callback == nil {
		panic("bridge: no callback registered for capability")
	}
	return callback(p.handle, method, owner, thunk)
}

// WithReturn forwards the passthrough interception to the foreign
// delegate.
func (p *Proxy) WithReturn(owner platform.Owner, thunk platform.Thunk) any {
	return p.call(MethodWithReturn, owner, thunk)
}

// StringSaver forwards the save interception to the foreign delegate.
func (p *Proxy) StringSaver(owner platform.Owner, thunk platform.Thunk) {
	p.call(MethodStringSaver, owner, thunk)
}

// WithCounter forwards the counting interception to the foreign
// delegate.
func (p *Proxy) WithCounter(owner platform.Owner, thunk platform.Thunk) int {
	n, ok := p.call(MethodWithCounter, owner, thunk).(int)
	if !ok {
		panic("bridge: withCounter dispatch returned a non-integer")
	}
	return n
}

// Free tells the foreign side the native side is done with the
// delegate instance, releasing its handle. The proxy must not be used
// after Free.
func (p *Proxy) Free() {
	p.call(MethodFree, nil, nil)
}
