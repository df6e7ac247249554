package dates

import (
	"errors"
	"fmt"
)

// ErrUnparseableDate matches every UnparseableDateError via errors.Is.
var ErrUnparseableDate = errors.New("unparseable date")

// UnparseableDateError is returned when an input cannot be turned into a
// canonical date string. Input holds the original value for diagnostics.
type UnparseableDateError struct {
	Input string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("unparseable date %q", e.Input)
}

// Is reports whether target is ErrUnparseableDate.
func (e *UnparseableDateError) Is(target error) bool {
	return target == ErrUnparseableDate
}
