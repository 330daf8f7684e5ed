package starlark

import "errors"

var (
	ErrMissingFunction = errors.New("starlark delegate function missing")
	ErrNotCallable     = errors.New("starlark delegate symbol is not callable")
)
