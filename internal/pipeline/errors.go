package pipeline

import "errors"

// ErrNoRecord is returned by steps that need a dataset when no load step ran before them.
var ErrNoRecord = errors.New("no dataset loaded")

// ErrNothingToWrite is returned by the write step when no document was rendered.
var ErrNothingToWrite = errors.New("no rendered documents to write")
