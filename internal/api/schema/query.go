package schema

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	errQueryParameterInvalidType = func(name, value, expectedType string) *Error {
		return &Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int64) *Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("The query parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errQueryParameterUnknownOption = func(name, value string, options []string) *Error {
		return &Error{
			Type:    "validation.query.parameter.unknownOption",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') is not one of %s.", name, value, strings.Join(options, ", ")),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"options":   options,
			},
		}
	}
)

// QueryNumber extracts and validates an optional integer value out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, def, min, max int64) (int64, *Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		return def, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "number")
	}
	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, parsed, min, max)
	}
	return parsed, nil
}

// QueryOption extracts an optional query parameter that has to match one of the given options (case-insensitively).
// The first option is the default.
func QueryOption(request *http.Request, key string, options ...string) (string, *Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		return options[0], nil
	}
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option, nil
		}
	}
	return "", errQueryParameterUnknownOption(key, value, options)
}
