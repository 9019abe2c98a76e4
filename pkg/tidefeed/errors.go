package tidefeed

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewLines        = errors.New("too few lines")
	ErrTooFewColumns      = errors.New("too few columns")
	ErrUnknownCategory    = errors.New("unknown tide category")
	ErrMalformedTime      = errors.New("malformed time of day")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidCatalogLine = errors.New("invalid catalog line")
)

// ParseError reports a structural defect in feed or catalog text. Err is one
// of the Err* values above, possibly wrapped with more detail.
type ParseError struct {
	// Line is the 1-based line number in the input, or 0 when the defect is
	// not tied to one line.
	Line int
	// Text is the offending input.
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	case e.Text != "":
		return fmt.Sprintf("%q: %v", e.Text, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
