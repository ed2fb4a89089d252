// Package dataset loads the report input record from a JSON file.
//
// The loader checks that every key the renderers read is present before
// returning the record, so a malformed dataset fails the run before any
// output document is produced.
package dataset
