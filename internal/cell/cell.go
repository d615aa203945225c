package cell

import (
	"fmt"
	"go.uber.org/atomic"
	"golang.org/x/exp/constraints"
	"math"
)

// Number is the set of value types a Cell can hold
type Number interface {
	constraints.Integer | constraints.Float
}

// noCopy makes go vet's copylocks check flag accidental copies of a Cell
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Cell represents a single atomically mutable numeric value.
// The zero value holds the zero value of T and is ready to use.
// A Cell must not be copied after first use; hand out pointers instead.
type Cell[T Number] struct {
	_    noCopy
	bits atomic.Uint64
}

// New creates a new zero-valued cell
func New[T Number]() *Cell[T] {
	return new(Cell[T])
}

// Read atomically loads the current value
func (cell *Cell[T]) Read() T {
	return decode[T](cell.bits.Load())
}

// Assign atomically stores the given value and returns it
func (cell *Cell[T]) Assign(value T) T {
	cell.bits.Store(encode(value))
	return value
}

// Increment atomically increments the value by one and returns the incremented value.
// Integer overflow wraps around.
func (cell *Cell[T]) Increment() T {
	for {
		old := cell.bits.Load()
		next := decode[T](old) + 1
		if cell.bits.CAS(old, encode(next)) {
			return next
		}
	}
}

// String returns the textual representation of the current value
func (cell *Cell[T]) String() string {
	return fmt.Sprint(cell.Read())
}

// IsFloat reports whether T is a floating point type
func IsFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

// IsSigned reports whether T can hold negative values
func IsSigned[T Number]() bool {
	var zero T
	return zero-1 < zero
}

// encode maps a value onto the 64 bits stored in a cell.
// Integers are sign-extended to 64 bits; floats are widened to float64 which is exact for float32.
func encode[T Number](value T) uint64 {
	if IsFloat[T]() {
		return math.Float64bits(float64(value))
	}
	return uint64(int64(value))
}

func decode[T Number](bits uint64) T {
	if IsFloat[T]() {
		return T(math.Float64frombits(bits))
	}
	return T(int64(bits))
}
