package report

import (
	"io"

	"github.com/volsreport/volsreport/internal/model"
)

// Renderer encodes a record into one output document held in memory.
// Nothing reaches the file system until every renderer has returned.
type Renderer interface {
	// Name identifies the renderer in logs and run history (e.g. "pdf").
	Name() string

	// Ext is the file extension of the output, including the dot.
	Ext() string

	// Render builds the document for rec.
	Render(rec *model.Record) ([]byte, error)
}

// Writer streams a summary of a record to a destination such as the
// terminal.
type Writer interface {
	// Write outputs the summary and returns the number of bytes written.
	Write(rec *model.Record) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// This is useful for printing a preview and saving it at the same time.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(rec *model.Record) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(rec)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
