package org

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when parse input is not valid UTF-8 text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidHeading is returned when a heading cannot be serialized.
	ErrInvalidHeading = errors.New("invalid heading")
	// ErrInvalidProperty is returned by [Heading.SetProperty] for keys or
	// values that cannot be represented in a property drawer.
	ErrInvalidProperty = errors.New("invalid property")
)

// PropertyError reports a malformed line inside a property drawer. Line is
// 1-based and relative to the first content line of the drawer.
type PropertyError struct {
	Line int
	Msg  string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("parse properties line %d: %s", e.Line, e.Msg)
}

func propertyErr(line int, msg string) error {
	return &PropertyError{Line: line, Msg: msg}
}

func headingErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidHeading, fmt.Sprintf(format, args...))
}
