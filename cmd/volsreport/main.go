// Package main provides the entry point for the volsreport CLI.
//
// volsreport turns the unauthorized fiber-optic attachment dataset into a
// PDF report and a PowerPoint deck for management.
//
// Usage:
//
//	volsreport
//	volsreport generate -i data/input.json -o output
//
// See --help for all available options.
package main

func main() {
	Execute()
}
