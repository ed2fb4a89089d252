// Package log provides the application logger, built on top of the
// standard slog package.
//
// Loggers log at Warn by default and at Debug in verbose mode. The
// HomeHandler wrapper rewrites file paths under the user's home directory
// to start with "~", so logs can be shared without exposing account names.
//
// # Usage
//
//	logger := log.New(os.Stderr, true) // verbose=true
//	logger.Debug("document written", "path", "/home/user/output/report.pdf")
//	// path=~/output/report.pdf
package log
