package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRosterMissing marks an absent developer roster, which callers render
// differently from an empty result.
var ErrRosterMissing = errors.New("developer roster not found")

// SchemaError signals a developer table that cannot be used as input.
type SchemaError struct {
	Missing []string
	Row     int
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema: missing required columns %s", strings.Join(e.Missing, ", "))
	}
	if e.Row > 0 {
		return fmt.Sprintf("schema: row %d: %s", e.Row, e.Reason)
	}
	return "schema: " + e.Reason
}

// FetchError wraps a per-developer network, status or decode failure.
type FetchError struct {
	Developer string
	Op        string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %q: %v", e.Op, e.Developer, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError wraps malformed XML or text supplied directly by a user.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse input: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
