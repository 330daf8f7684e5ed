package risor

import "errors"

var (
	ErrCompileFailed = errors.New("risor delegate compilation error")
	ErrEmptySource   = errors.New("risor delegate source is empty")
)
