package risor

import (
	"context"
	"fmt"
	"log/slog"

	risorLib "github.com/deepnoodle-ai/risor/v2"
	risorBytecode "github.com/deepnoodle-ai/risor/v2/pkg/bytecode"
	risorObject "github.com/deepnoodle-ai/risor/v2/pkg/object"

	"github.com/robbyt/go-intercept/internal/helpers"
	"github.com/robbyt/go-intercept/platform"
)

// Global names injected into the script for each interception call.
const (
	methodGlobal = "method"
	ownerGlobal  = "owner"
	thunkGlobal  = "thunk"
	saveGlobal   = "save"
	countGlobal  = "count"
)

// Delegate implements platform.Delegate on the Risor engine. The
// source program is compiled once and run once per interception call,
// with the operation name bound to the method global, the owner name
// to owner, and the deferred computation to the thunk builtin. The
// program's final value is the operation's result.
//
// The accumulating state (counter, last-observed-string) lives on this
// struct and is reached from the script through the save and count
// builtins, so it persists across runs.
type Delegate struct {
	code *risorBytecode.Code

	counter    int
	lastString string

	saveBuiltin  *risorObject.Builtin
	countBuiltin *risorObject.Builtin

	logHandler slog.Handler
	logger     *slog.Logger
}

// New compiles the source program once. Compile and Run must agree on
// the global name set, so compilation sees the same environment shape
// as each interception run; the thunk value itself is only bound at
// interception time.
func New(handler slog.Handler, source string) (*Delegate, error) {
	handler, logger := helpers.SetupLogger(handler, "risor", "Delegate")

	if source == "" {
		return nil, ErrEmptySource
	}

	d := &Delegate{
		logHandler: handler,
		logger:     logger,
	}
	d.saveBuiltin = risorObject.NewBuiltin(saveGlobal, d.save)
	d.countBuiltin = risorObject.NewBuiltin(countGlobal, d.count)

	placeholder := risorObject.NewNoopBuiltin(thunkGlobal)
	code, err := risorLib.Compile(context.Background(), source,
		risorLib.WithEnv(d.env("", "", placeholder)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, err)
	}
	d.code = code

	return d, nil
}

func (d *Delegate) String() string {
	return "risor.Delegate"
}

// WithReturn routes the passthrough policy through the script.
func (d *Delegate) WithReturn(owner platform.Owner, thunk platform.Thunk) any {
	return normalizeResult(d.eval(withReturnMethod, owner, thunk))
}

// StringSaver routes the save policy through the script. The script is
// expected to feed a string result to the save builtin; the run's own
// value is discarded.
func (d *Delegate) StringSaver(owner platform.Owner, thunk platform.Thunk) {
	d.eval(stringSaverMethod, owner, thunk)
}

// WithCounter routes the counting policy through the script, which
// must produce the new counter value as an integer.
func (d *Delegate) WithCounter(owner platform.Owner, thunk platform.Thunk) int {
	result := d.eval(withCounterMethod, owner, thunk)
	n, ok := normalizeResult(result).(int)
	if !ok {
		panic(fmt.Sprintf("risor withCounter result: expected int, got %T", result))
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

// Method names the script dispatches on.
const (
	withReturnMethod  = "withReturn"
	stringSaverMethod = "stringSaver"
	withCounterMethod = "withCounter"
)

// eval runs the compiled program for one interception call. Failures
// panic: the capability contract has no error channel, so script
// errors propagate like thunk failures. The protocol is synchronous
// with no cancellation concept, so the run uses a background context.
func (d *Delegate) eval(method string, owner platform.Owner, thunk platform.Thunk) any {
	thunkBuiltin := risorObject.NewBuiltin(thunkGlobal, func(
		ctx context.Context,
		args ...risorObject.Object,
	) (risorObject.Object, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%s: expected 0 arguments, got %d", thunkGlobal, len(args))
		}
		return risorObject.FromGoType(thunk()), nil
	})

	ownerName := ""
	if owner != nil {
		ownerName = owner.String()
	}

	result, err := risorLib.Run(context.Background(), d.code,
		risorLib.WithEnv(d.env(method, ownerName, thunkBuiltin)))
	if err != nil {
		panic(fmt.Sprintf("risor %s error: %v", method, err))
	}
	return result
}

// env builds the environment for one compile or run: the engine's
// stock builtins plus the five delegate globals. The key set must be
// identical at compile and run time, so both paths come through here.
func (d *Delegate) env(method, owner string, thunk risorObject.Object) map[string]any {
	env := risorLib.Builtins()
	env[methodGlobal] = method
	env[ownerGlobal] = owner
	env[thunkGlobal] = thunk
	env[saveGlobal] = d.saveBuiltin
	env[countGlobal] = d.countBuiltin
	return env
}

// save overwrites the last-observed-string slot. A non-string value
// leaves the slot untouched, matching the stringSaver contract.
func (d *Delegate) save(ctx context.Context, args ...risorObject.Object) (risorObject.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", saveGlobal, len(args))
	}
	if s, ok := args[0].(*risorObject.String); ok {
		d.lastString = s.Value()
	} else {
		d.logger.Debug("save ignoring non-string value", "type", args[0].Type())
	}
	return risorObject.Nil, nil
}

// count increments the running counter and returns the new value.
func (d *Delegate) count(ctx context.Context, args ...risorObject.Object) (risorObject.Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%s: expected 0 arguments, got %d", countGlobal, len(args))
	}
	d.counter++
	return risorObject.NewInt(int64(d.counter)), nil
}

// normalizeResult maps the engine's native result conversion onto the
// protocol's Go types. Integers come back from a run as int64; values
// that crossed into the script as int must round-trip as int.
func normalizeResult(v any) any {
	if n, ok := v.(int64); ok {
		return int(n)
	}
	return v
}
