package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and allow callers to use
// errors.Is() while still printing a human-readable message.
var (
	// ErrNoInput is returned when the dataset path is empty.
	ErrNoInput = errors.New("no input file specified: use --input")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified: use --output-dir")

	// ErrInvalidBaseName is returned when the output base name is empty or
	// contains a path separator. Documents are always written directly into
	// the output directory.
	ErrInvalidBaseName = errors.New("invalid output base name: must be a plain file name")

	// ErrEmptyConclusion is returned when a configured conclusion line is blank.
	ErrEmptyConclusion = errors.New("invalid conclusions: lines must not be blank")
)
