package extractor

import "errors"

var (
	// ErrMalformedExampleArgs is returned when an example-args entry has no '=' sign.
	ErrMalformedExampleArgs = errors.New("malformed example args")
)
