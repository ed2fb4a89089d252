package database

import "errors"

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// ErrNotWritten is returned when saving a run whose documents were not written.
var ErrNotWritten = errors.New("run has no written documents")
