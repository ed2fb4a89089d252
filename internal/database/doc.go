// Package database provides SQLite-based run history for volsreport.
//
// Every recorded run stores the dataset it was generated from and the
// documents it produced (path, size and SHA3-256 digest). The history lets
// a user list past runs, check which figures changed between two reporting
// dates, and verify that a document on disk is the one that was produced.
//
// Design decision: We use SQLite via modernc.org/sqlite because the
// database is a single file in the XDG data directory and the driver is
// CGO-free, so the binary still cross-compiles.
package database
