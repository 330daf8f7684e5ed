package delegates

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-intercept/internal/helpers"
	"github.com/robbyt/go-intercept/platform"
)

// Recording is a host-side platform.Delegate that applies the three
// interception policies directly and records their side effects: a
// running counter and the last string observed by StringSaver. State
// belongs to the Recording instance, so relays sharing one Recording
// accumulate into the same counter and slot.
//
// Recording assumes the single-threaded call discipline of the
// delegation protocol; use from multiple goroutines is undefined.
type Recording struct {
	counter    int
	lastString string

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewRecording creates a Recording delegate. A nil handler falls back
// to the default text handler.
func NewRecording(handler slog.Handler) *Recording {
	handler, logger := helpers.SetupLogger(handler, "delegates", "Recording")
	return &Recording{
		logHandler: handler,
		logger:     logger,
	}
}

func (d *Recording) String() string {
	return "delegates.Recording"
}

// WithReturn implements the passthrough policy: run the thunk once,
// hand its result straight back.
func (d *Recording) WithReturn(owner platform.Owner, thunk platform.Thunk) any {
	result := thunk()
	d.logger.Debug("withReturn", "owner", ownerName(owner), "result", result)
	return result
}

// StringSaver implements the save policy: run the thunk once and
// overwrite the last-observed-string slot with a string result. A
// non-string result leaves the slot unchanged.
func (d *Recording) StringSaver(owner platform.Owner, thunk platform.Thunk) {
	result := thunk()
	s, ok := result.(string)
	if !ok {
		d.logger.Debug("stringSaver ignoring non-string result",
			"owner", ownerName(owner), "type", fmt.Sprintf("%T", result))
		return
	}
	d.lastString = s
	d.logger.Debug("stringSaver", "owner", ownerName(owner), "saved", s)
}

// WithCounter implements the counting policy: run the thunk once,
// discard its result, and return the incremented counter.
func (d *Recording) WithCounter(owner platform.Owner, thunk platform.Thunk) int {
	thunk()
	d.counter++
	d.logger.Debug("withCounter", "owner", ownerName(owner), "counter", d.counter)
	return d.counter
}

// Counter returns the number of WithCounter interceptions so far.
func (d *Recording) Counter() int {
	return d.counter
}

// LastString returns the last string observed by StringSaver.
func (d *Recording) LastString() string {
	return d.lastString
}

func ownerName(owner platform.Owner) string {
	if owner == nil {
		return ""
	}
	return owner.String()
}
