package parser

import (
	"errors"
	"fmt"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrSourceUnavailable is returned when the document could not be obtained at all.
	ErrSourceUnavailable = errors.New("indoor map source unavailable")
	// ErrMalformed is returned when the document was read but its content is invalid.
	ErrMalformed = errors.New("malformed indoor map")
	// ErrReentrant is returned when a listener calls back into the parser it is attached to.
	ErrReentrant = errors.New("parser is already reading a document")
)

// AttributeError reports an attribute whose value could not be decoded.
// It matches both ErrMalformed and the underlying decoding error.
type AttributeError struct {
	Element   string // tag of the element carrying the attribute
	Attribute string
	Value     string
	Err       error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("invalid attribute '%s' in <%s>: %q: %v", e.Attribute, e.Element, e.Value, e.Err)
}

func (e *AttributeError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
