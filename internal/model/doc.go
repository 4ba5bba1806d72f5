// Package model defines the domain types and value objects for the
// gcode-ejector CLI.
//
// This package contains pure data structures with no external dependencies.
// A FileReport describes the outcome of post-processing one G-code file, and
// a BatchSummary aggregates the reports of one run over an input directory.
// Nothing here is persisted: every value lives for a single invocation.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
