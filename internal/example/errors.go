package example

import "errors"

var (
	// ErrMissingExampleArg is returned when a path placeholder has no example binding.
	ErrMissingExampleArg = errors.New("missing example argument")
	// ErrMalformedJSON is returned when example JSON cannot be parsed.
	ErrMalformedJSON = errors.New("malformed example JSON")
)
