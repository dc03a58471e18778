package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes wrapped by LoadError.
var (
	ErrSourceNotFound = errors.New("dataset source not found")
	ErrMissingColumn  = errors.New("required column missing")
	ErrInvalidValue   = errors.New("invalid value")
	ErrMalformed      = errors.New("malformed source")
	ErrNoRows         = errors.New("dataset has no rows")
)

// LoadError reports why a dataset could not be loaded. It is fatal at
// startup.
type LoadError struct {
	Source string // file path, table name or reader label
	Line   int    // 1-based source line or row, 0 when not row-specific
	Column string // offending column, if any
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Source != "" {
		fmt.Fprintf(&b, " %q", e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// AsLoadError extracts a *LoadError from err.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func loadErr(source string, line int, column string, err error) *LoadError {
	return &LoadError{Source: source, Line: line, Column: column, Err: err}
}

// cellError locates a row-level failure in one column. Callers attach the
// source and line with loadErr.
type cellError struct {
	column string
	err    error
}

func (e *cellError) Error() string { return e.column + ": " + e.err.Error() }
func (e *cellError) Unwrap() error { return e.err }
