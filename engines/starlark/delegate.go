package starlark

import (
	"fmt"
	"log/slog"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-intercept/internal/helpers"
	"github.com/robbyt/go-intercept/platform"
)

// Names of the interception functions the source program must define.
const (
	withReturnFn  = "withReturn"
	stringSaverFn = "stringSaver"
	withCounterFn = "withCounter"
)

// Delegate implements platform.Delegate on the Starlark engine. The
// three interception operations are Starlark functions defined by the
// source program, each called as fn(owner, thunk). The thunk crosses
// into the script as a builtin that re-runs the native computation on
// every call, so the script alone decides if and how often it runs.
//
// Starlark freezes module globals after execution, so the delegate's
// accumulating state (counter, last-observed-string) lives on this
// struct and is reached from the script through the predeclared
// builtins save(s) and count().
type Delegate struct {
	globals starlarkLib.StringDict

	counter    int
	lastString string

	logHandler slog.Handler
	logger     *slog.Logger
}

// New executes the source program once and binds the three
// interception functions. A missing or non-callable function is a
// construction error.
func New(handler slog.Handler, source string) (*Delegate, error) {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Delegate")

	d := &Delegate{
		logHandler: handler,
		logger:     logger,
	}

	predeclared := starlarkLib.StringDict{
		"save":  starlarkLib.NewBuiltin("save", d.saveBuiltin),
		"count": starlarkLib.NewBuiltin("count", d.countBuiltin),
	}

	thread := &starlarkLib.Thread{Name: "init"}
	globals, err := starlarkLib.ExecFile(thread, "delegate.star", source, predeclared)
	if err != nil {
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}

	for _, name := range []string{withReturnFn, stringSaverFn, withCounterFn} {
		fn, ok := globals[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFunction, name)
		}
		if _, ok := fn.(starlarkLib.Callable); !ok {
			return nil, fmt.Errorf("%w: %s is a %s", ErrNotCallable, name, fn.Type())
		}
	}

	d.globals = globals
	return d, nil
}

func (d *Delegate) String() string {
	return "starlark.Delegate"
}

// WithReturn routes the passthrough policy through the script.
func (d *Delegate) WithReturn(owner platform.Owner, thunk platform.Thunk) any {
	result, err := convertStarlarkValueToInterface(d.call(withReturnFn, owner, thunk))
	if err != nil {
		panic(fmt.Sprintf("starlark withReturn result: %v", err))
	}
	return result
}

// StringSaver routes the save policy through the script. The script is
// expected to feed a string result to the save builtin; the call's own
// value is discarded.
func (d *Delegate) StringSaver(owner platform.Owner, thunk platform.Thunk) {
	d.call(stringSaverFn, owner, thunk)
}

// WithCounter routes the counting policy through the script, which
// must return the new counter value as an integer.
func (d *Delegate) WithCounter(owner platform.Owner, thunk platform.Thunk) int {
	n, err := starlarkLib.AsInt32(d.call(withCounterFn, owner, thunk))
	if err != nil {
		panic(fmt.Sprintf("starlark withCounter result: %v", err))
	}
	return n
}

// Counter returns the number of count() calls issued by the script.
func (d *Delegate) Counter() int {
	return d.counter
}

// LastString returns the last string the script passed to save().
func (d *Delegate) LastString() string {
	return d.lastString
}

// call invokes one of the bound interception functions. Failures
// panic: the capability contract has no error channel, so script
// errors propagate like thunk failures.
func (d *Delegate) call(name string, owner platform.Owner, thunk platform.Thunk) starlarkLib.Value {
	thunkBuiltin := starlarkLib.NewBuiltin("thunk", func(
		t *starlarkLib.Thread,
		b *starlarkLib.Builtin,
		args starlarkLib.Tuple,
		kwargs []starlarkLib.Tuple,
	) (starlarkLib.Value, error) {
		if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return convertToStarlarkValue(thunk())
	})

	ownerName := ""
	if owner != nil {
		ownerName = owner.String()
	}

	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(thread *starlarkLib.Thread, msg string) {
			d.logger.Info(msg, "starlark-thread", thread.Name)
		},
	}

	callArgs := starlarkLib.Tuple{starlarkLib.String(ownerName), thunkBuiltin}
	result, err := starlarkLib.Call(thread, d.globals[name], callArgs, nil)
	if err != nil {
		panic(fmt.Sprintf("starlark %s error: %v", name, err))
	}
	return result
}

// saveBuiltin overwrites the last-observed-string slot. A non-string
// argument leaves the slot unchanged, matching the StringSaver
// contract.
func (d *Delegate) saveBuiltin(
	t *starlarkLib.Thread,
	b *starlarkLib.Builtin,
	args starlarkLib.Tuple,
	kwargs []starlarkLib.Tuple,
) (starlarkLib.Value, error) {
	var value starlarkLib.Value
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}
	if s, ok := value.(starlarkLib.String); ok {
		d.lastString = string(s)
	} else {
		d.logger.Debug("save ignoring non-string value", "type", value.Type())
	}
	return starlarkLib.None, nil
}

// countBuiltin increments the running counter and returns the new
// value.
func (d *Delegate) countBuiltin(
	t *starlarkLib.Thread,
	b *starlarkLib.Builtin,
	args starlarkLib.Tuple,
	kwargs []starlarkLib.Tuple,
) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	d.counter++
	return starlarkLib.MakeInt(d.counter), nil
}
