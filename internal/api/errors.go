package api

import (
	"errors"
	"fmt"
	"github.com/skybi/tally/internal/api/schema"
	"github.com/skybi/tally/internal/key"
)

var keyErrorTypes = []struct {
	kind error
	typ  string
}{
	{kind: key.ErrKeyTooLong, typ: "validation.key.tooLong"},
	{kind: key.ErrInvalidSectionLength, typ: "validation.key.invalidSectionLength"},
	{kind: key.ErrInvalidLeadingCharacter, typ: "validation.key.invalidLeadingCharacter"},
	{kind: key.ErrInvalidTrailingCharacter, typ: "validation.key.invalidTrailingCharacter"},
}

var errValueInvalid = func(value string, err error) *schema.Error {
	return &schema.Error{
		Type:    "validation.value.invalid",
		Message: fmt.Sprintf("The value '%s' could not be parsed.", value),
		Details: map[string]any{
			"value": value,
			"error": err.Error(),
		},
	}
}

// keyError translates a key grammar violation into an API error.
// It returns nil if err does not originate from the key grammar.
func keyError(err error) *schema.Error {
	var keyErr *key.Error
	if !errors.As(err, &keyErr) {
		return nil
	}
	for _, candidate := range keyErrorTypes {
		if errors.Is(err, candidate.kind) {
			details := map[string]any{
				"key": keyErr.Key,
			}
			if keyErr.Section >= 0 {
				// One-based like the section number in key.Error's message
				details["section"] = keyErr.Section + 1
			}
			return &schema.Error{
				Type:    candidate.typ,
				Message: fmt.Sprintf("The key is invalid: %s.", keyErr.Wrapping),
				Details: details,
			}
		}
	}
	return nil
}
