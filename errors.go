package csvdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow is matched by every error describing a record that could not be split into fields.
	ErrMalformedRow = errors.New("csvdoc: malformed row")
	// ErrRowNotFound is returned when a row index does not exist, even after the source was read as far as needed.
	ErrRowNotFound = errors.New("csvdoc: row not found")
	// ErrFieldNotFound is returned when a row has no field for the requested name or position.
	ErrFieldNotFound = errors.New("csvdoc: field not found")
	// ErrWriteNotSupported is returned by every mutating method of Document and Row.
	ErrWriteNotSupported = errors.New("csvdoc: document is read-only")
	// ErrClosed is returned when rows are requested from a Document whose source was closed.
	ErrClosed = errors.New("csvdoc: document is closed")

	// ErrUnterminatedQuote is returned when a quoted field is not closed before EOF.
	ErrUnterminatedQuote = errors.New("csvdoc: unterminated quoted field")
	// ErrBareQuote is returned in strict mode when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("csvdoc: bare quote in non-quoted field")
	// ErrTrailingData is returned by Split when the text holds more than one record.
	ErrTrailingData = errors.New("csvdoc: data after end of record")
)

// ParseError contains location information for a malformed record.
// It matches ErrMalformedRow as well as the wrapped Err.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvdoc: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports every ParseError as an ErrMalformedRow.
func (e *ParseError) Is(target error) bool {
	return e != nil && target == ErrMalformedRow
}

func rowNotFound(index int) error {
	return fmt.Errorf("%w: index %d", ErrRowNotFound, index)
}

func fieldNotFound(key Key) error {
	return fmt.Errorf("%w: key %s", ErrFieldNotFound, key)
}
