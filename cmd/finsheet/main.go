// Package main provides the entry point for the finsheet CLI.
//
// finsheet extracts financial statements from SEC-style filings (PDF or
// HTML) and validates them against standard accounting checks.
//
// Usage:
//
//	finsheet process <filing>
//	finsheet export --pages 40-45 <filing.pdf>
//
// See --help for all available options.
package main

// main is the entry point for finsheet.
func main() {
	Execute()
}
