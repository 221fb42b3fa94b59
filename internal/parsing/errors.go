package parsing

import "fmt"

// ParseError represents a document that could not be decoded in the requested shape.
// Parsers recover from it by falling back to line-oriented parsing; it is only
// surfaced by the strict decoders.
type ParseError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
