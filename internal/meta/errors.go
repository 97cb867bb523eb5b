package meta

import (
	"errors"
	"fmt"
)

// ErrInvalidInvocation marks a request that names no usable input.
var ErrInvalidInvocation = errors.New("invalid invocation")

// IOError reports a source file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports source text the grammar rejected. Line and Column are
// 1-based and point at the first offending node.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}
