package cell

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// Parse parses the textual representation of a value of type T.
// Integer types are parsed in base 10 and range-checked against the width of T.
func Parse[T Number](raw string) (T, error) {
	raw = strings.TrimSpace(raw)
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8

	switch {
	case IsFloat[T]():
		parsed, err := strconv.ParseFloat(raw, bits)
		if err != nil {
			return zero, fmt.Errorf("parse %q as %T: %w", raw, zero, err)
		}
		return T(parsed), nil
	case IsSigned[T]():
		parsed, err := strconv.ParseInt(raw, 10, bits)
		if err != nil {
			return zero, fmt.Errorf("parse %q as %T: %w", raw, zero, err)
		}
		return T(parsed), nil
	default:
		parsed, err := strconv.ParseUint(raw, 10, bits)
		if err != nil {
			return zero, fmt.Errorf("parse %q as %T: %w", raw, zero, err)
		}
		return T(parsed), nil
	}
}
