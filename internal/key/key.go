package key

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the maximum amount of characters a key may consist of unless configured otherwise
	DefaultMaxLength = 30

	// Separator separates the sections of a key
	Separator = "-"

	// Denylist contains the letters a section must not start with
	Denylist = "DFGJMQV"
)

// Normalize returns the normalized representation of a raw key.
// Only the ASCII letters a-z are upper-cased; every other byte is kept as is.
func Normalize(raw string) string {
	buf := []byte(raw)
	for i, char := range buf {
		if char >= 'a' && char <= 'z' {
			buf[i] = char - 'a' + 'A'
		}
	}
	return string(buf)
}

// Validate checks the given raw key against the key grammar and returns its normalized form.
// A key consists of one or more sections separated by '-'. Every section has to be exactly two characters long,
// start with a letter that is not part of the Denylist and end with a digit between 1 and 9.
// The returned error is always of type *Error and carries the raw key.
func Validate(raw string, maxLength int) (string, error) {
	if utf8.RuneCountInString(raw) > maxLength {
		return "", &Error{Wrapping: ErrKeyTooLong, Key: raw, Section: -1}
	}

	normalized := Normalize(raw)
	for i, section := range strings.Split(normalized, Separator) {
		if err := validateSection(section); err != nil {
			return "", &Error{Wrapping: err, Key: raw, Section: i}
		}
	}
	return normalized, nil
}

func validateSection(section string) error {
	if len(section) != 2 {
		return ErrInvalidSectionLength
	}
	if lead := section[0]; lead < 'A' || lead > 'Z' || strings.IndexByte(Denylist, lead) >= 0 {
		return ErrInvalidLeadingCharacter
	}
	if trail := section[1]; trail < '1' || trail > '9' {
		return ErrInvalidTrailingCharacter
	}
	return nil
}

// Less reports whether the normalized key a sorts before b.
// Shorter keys sort first; keys of equal length are compared lexicographically.
func Less(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
