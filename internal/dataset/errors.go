package dataset

import "errors"

var (
	// ErrMissingField is returned when a key the renderers read is absent or null.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformed is returned when the input is not a JSON document of the expected shape.
	ErrMalformed = errors.New("malformed dataset")
)
