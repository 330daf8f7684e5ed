package bridge

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-intercept/internal/helpers"
	"github.com/robbyt/go-intercept/platform"
)

// Dispatcher is the foreign side of the bridge. It owns the handle map
// of registered delegate instances and produces the Callback that the
// native side dispatches through.
type Dispatcher struct {
	handles *HandleMap[platform.Delegate]

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher with an empty handle map.
func NewDispatcher(handler slog.Handler) *Dispatcher {
	handler, logger := helpers.SetupLogger(handler, "bridge", "Dispatcher")
	return &Dispatcher{
		handles:    NewHandleMap[platform.Delegate](),
		logHandler: handler,
		logger:     logger,
	}
}

// Register stores a delegate instance and returns the handle the
// native side will use to reach it.
func (d *Dispatcher) Register(delegate platform.Delegate) uint64 {
	handle := d.handles.Insert(delegate)
	d.logger.Debug("registered delegate", "handle", handle)
	return handle
}

// Live reports the number of registered delegate instances.
func (d *Dispatcher) Live() int {
	return d.handles.Len()
}

// Callback returns the dispatch function for this dispatcher. The
// returned Callback resolves the handle and routes the interception to
// the matching delegate operation. MethodFree drops the handle and
// returns nil. An unknown handle or selector is an internal bug on the
// native side, and panics.
func (d *Dispatcher) Callback() Callback {
	return func(handle uint64, method uint32, owner platform.Owner, thunk platform.Thunk) any {
		if method == MethodFree {
			d.handles.Remove(handle)
			d.logger.Debug("freed delegate", "handle", handle)
			return nil
		}

		delegate, ok := d.handles.Get(handle)
		if !ok {
			panic(fmt.Sprintf("bridge: unknown delegate handle %d", handle))
		}

		switch method {
		case MethodWithReturn:
			return delegate.WithReturn(owner, thunk)
		case MethodStringSaver:
			delegate.StringSaver(owner, thunk)
			return nil
		case MethodWithCounter:
			return delegate.WithCounter(owner, thunk)
		default:
			panic(fmt.Sprintf("bridge: unknown method selector %d", method))
		}
	}
}
