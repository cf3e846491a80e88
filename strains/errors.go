package strains

import (
	"errors"
	"fmt"
)

// ErrInvalidAbundance is wrapped by NumericParseError when a field parses as a
// number but is negative, NaN or infinite.
var ErrInvalidAbundance = errors.New("abundance must be a finite, non-negative number")

// MalformedRowError reports a row whose column count does not fit the
// expected layout.
type MalformedRowError struct {
	Line     int
	Columns  int
	Expected int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: found %d columns, expected %d", e.Line, e.Columns, e.Expected)
}

// NumericParseError reports an abundance field that is not a usable number.
type NumericParseError struct {
	Line   int
	Column int
	Value  string
	Err    error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: cannot use %q as an abundance: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *NumericParseError) Unwrap() error {
	return e.Err
}
