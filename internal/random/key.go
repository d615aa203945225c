package random

import (
	"github.com/skybi/tally/internal/key"
	"math/rand"
	"strings"
)

var (
	// CharsetLeading contains every letter a key section may start with
	CharsetLeading = []rune("ABCEHIKLNOPRSTUWXYZ")

	// CharsetTrailing contains every digit a key section may end with
	CharsetTrailing = []rune("123456789")
)

// String generates a random string with a specific length, only using characters out of the given charset
func String(length int, charset []rune) string {
	buf := make([]rune, length)
	for i := range buf {
		buf[i] = charset[rand.Intn(len(charset))]
	}
	return string(buf)
}

// Key generates a random valid key consisting of the given amount of sections.
// The amount is clamped so that the key never exceeds key.DefaultMaxLength.
func Key(sections int) string {
	maxSections := (key.DefaultMaxLength + len(key.Separator)) / (2 + len(key.Separator))
	if sections < 1 {
		sections = 1
	} else if sections > maxSections {
		sections = maxSections
	}

	parts := make([]string, sections)
	for i := range parts {
		parts[i] = String(1, CharsetLeading) + String(1, CharsetTrailing)
	}
	return strings.Join(parts, key.Separator)
}
