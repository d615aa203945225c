package key

import (
	"errors"
	"fmt"
)

var (
	ErrKeyTooLong               = errors.New("key exceeds the maximum length")
	ErrInvalidSectionLength     = errors.New("key section is not exactly two characters long")
	ErrInvalidLeadingCharacter  = errors.New("key section does not start with an allowed letter")
	ErrInvalidTrailingCharacter = errors.New("key section does not end with a digit between 1 and 9")
)

// Error represents a key that violates the key grammar.
// Section is the zero-based index of the offending section or -1 if the key as a whole was rejected.
type Error struct {
	Wrapping error
	Key      string
	Section  int
}

func (err *Error) Error() string {
	if err.Section < 0 {
		return fmt.Sprintf("key %q: %s", err.Key, err.Wrapping)
	}
	return fmt.Sprintf("key %q: section %d: %s", err.Key, err.Section+1, err.Wrapping)
}

func (err *Error) Unwrap() error {
	return err.Wrapping
}
