package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration loading.
var (
	// ErrMissingKey indicates a required configuration key has no value.
	ErrMissingKey = errors.New("missing configuration key")

	// ErrInvalidValue indicates a key holds a value of the wrong type.
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrUnknownFormat indicates a config file extension no loader handles.
	ErrUnknownFormat = errors.New("unknown config file format")
)

// Error reports a problem with one configuration key.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config key %q: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Position is a location in a config file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// ParseError represents a config file parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos.Filename, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
