package relay

import (
	"log/slog"

	"github.com/robbyt/go-intercept/internal/helpers"
	"github.com/robbyt/go-intercept/platform"
)

// Relay is the native side of the delegation bridge. Each method
// packages its own computation as a platform.Thunk and routes it
// through the bound delegate, returning whatever the chosen
// interception operation produces, verbatim.
//
// The delegate reference is set at construction and never changes.
// Distinct relays may share one delegate, in which case the delegate's
// state accumulates across all of them.
type Relay struct {
	value    string
	delegate platform.Delegate

	logHandler slog.Handler
	logger     *slog.Logger
}

// Option is a function that configures a Relay during construction.
type Option func(*Relay)

// WithLogHandler sets the slog handler used by the relay.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Relay) {
		if handler != nil {
			r.logHandler = handler
		}
	}
}

// New creates a Relay with no string state, bound to the given
// delegate for the relay's lifetime.
func New(delegate platform.Delegate, opts ...Option) *Relay {
	return NewFromString("", delegate, opts...)
}

// NewFromString creates a Relay holding the given string value, bound
// to the given delegate for the relay's lifetime.
func NewFromString(value string, delegate platform.Delegate, opts ...Option) *Relay {
	r := &Relay{
		value:    value,
		delegate: delegate,
	}
	for _, opt := range opts {
		opt(r)
	}

	handler, logger := helpers.SetupLogger(r.logHandler, "relay", "")
	r.logHandler = handler
	r.logger = logger
	return r
}

func (r *Relay) String() string {
	return "relay.Relay"
}

// Length reports the length of the stored string. The computation is
// deferred and routed through the delegate's WithReturn passthrough,
// so the delegate decides when it actually runs.
func (r *Relay) Length() int {
	r.logger.Debug("routing length computation", "value", r.value)
	return platform.RunThrough(r.delegate, r, func() int {
		return len(r.value)
	})
}

// Count routes a computation through the delegate's WithCounter
// operation and returns the delegate's new counter value. Repeated
// calls return consecutive values even with identical relay state,
// because the counter lives in the delegate.
func (r *Relay) Count() int {
	r.logger.Debug("routing counted computation")
	return r.delegate.WithCounter(r, platform.Defer(func() string {
		return r.value
	}))
}

// Save routes the argument through the delegate's StringSaver
// operation as an identity computation. The value ends up in the
// delegate's last-observed-string slot; nothing is returned.
func (r *Relay) Save(s string) {
	r.logger.Debug("routing string save", "s", s)
	r.delegate.StringSaver(r, platform.Defer(func() string {
		return s
	}))
}
