// Package amerr defines the small error taxonomy the AM printability filter
// reports at its boundary: a DomainError when the caller asked for something
// meaningless (wrong vector length, malformed index tuple, degenerate
// tetrahedron, ...) and an OutOfRangeError when the caller indexed outside a
// valid range. Both are plain error values, following the rest of this
// module's stdlib-only, fmt.Errorf-flavoured error handling.
package amerr

import "fmt"

// DomainError reports that an argument is meaningless for the operation,
// independent of any particular index (bad basis, flipped bounds, wrong
// vector length, degenerate tet, P-norm < 1, negative smax argument, ...).
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string { return e.msg }

// Domainf builds a DomainError with a formatted message.
func Domainf(format string, args ...any) error {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}

// OutOfRangeError reports that an index argument falls outside a valid
// range (tet node index, grid node index, containing-element index, ...).
type OutOfRangeError struct {
	msg string
}

func (e *OutOfRangeError) Error() string { return e.msg }

// OutOfRangef builds an OutOfRangeError with a formatted message.
func OutOfRangef(format string, args ...any) error {
	return &OutOfRangeError{msg: fmt.Sprintf(format, args...)}
}

// IsDomain reports whether err is a DomainError.
func IsDomain(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// IsOutOfRange reports whether err is an OutOfRangeError.
func IsOutOfRange(err error) bool {
	_, ok := err.(*OutOfRangeError)
	return ok
}
