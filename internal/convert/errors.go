package convert

import (
	"errors"
	"fmt"
)

var (
	ErrMissingArgument = errors.New("input file must be specified with --input or -i")
	ErrInputNotFound   = errors.New("input file does not exist")
)

// IOError reports a failure reading the input or writing the output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

var _ error = (*IOError)(nil)
