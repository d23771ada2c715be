package rtc

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned in strict mode for a field selector that names no field.
var ErrUnknownField = errors.New("rtc: unknown field selector")

// RangeError reports a value outside its calendar range. It is only produced in strict mode.
type RangeError struct {
	Field Field
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rtc: %s %d out of range", e.Field, e.Value)
}
