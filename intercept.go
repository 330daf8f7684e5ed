package intercept

import (
	"log/slog"

	"github.com/robbyt/go-intercept/bridge"
	"github.com/robbyt/go-intercept/delegates"
	risorDelegate "github.com/robbyt/go-intercept/engines/risor"
	starlarkDelegate "github.com/robbyt/go-intercept/engines/starlark"
	"github.com/robbyt/go-intercept/platform"
	"github.com/robbyt/go-intercept/relay"
)

// NewRelay creates a relay with no string state, bound to the given
// delegate.
func NewRelay(delegate platform.Delegate, opts ...relay.Option) *relay.Relay {
	return relay.New(delegate, opts...)
}

// NewRelayFromString creates a relay holding the given string value,
// bound to the given delegate.
func NewRelayFromString(value string, delegate platform.Delegate, opts ...relay.Option) *relay.Relay {
	return relay.NewFromString(value, delegate, opts...)
}

// NewRecordingDelegate creates the host-side reference delegate.
func NewRecordingDelegate(handler slog.Handler) *delegates.Recording {
	return delegates.NewRecording(handler)
}

// FromStarlarkString builds a delegate whose interception policies are
// the withReturn, stringSaver, and withCounter functions of the given
// Starlark source.
func FromStarlarkString(source string, handler slog.Handler) (*starlarkDelegate.Delegate, error) {
	return starlarkDelegate.New(handler, source)
}

// FromRisorString builds a delegate whose interception policies are
// implemented by the given Risor source, dispatching on the injected
// method global.
func FromRisorString(source string, handler slog.Handler) (*risorDelegate.Delegate, error) {
	return risorDelegate.New(handler, source)
}

// NewBridgedDelegate routes the given delegate through the full
// foreign-callback path: the delegate is registered with a dispatcher,
// and the returned proxy reaches it only through the dispatch callback
// and its handle. Relays bound to the proxy behave exactly as if bound
// to the delegate directly.
func NewBridgedDelegate(delegate platform.Delegate, handler slog.Handler) *bridge.Proxy {
	dispatcher := bridge.NewDispatcher(handler)

	slot := &bridge.CallbackSlot{}
	slot.Set(dispatcher.Callback())

	handle := dispatcher.Register(delegate)
	return bridge.NewProxy(slot, handle)
}
