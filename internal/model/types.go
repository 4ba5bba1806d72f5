package model

import "fmt"

// FileStatus represents the outcome of post-processing a single file.
type FileStatus string

const (
	// StatusOK indicates the file was processed and (unless dry-run) written.
	StatusOK FileStatus = "ok"

	// StatusFailed indicates processing stopped before any output was written.
	// The reason is recorded in FileReport.Error.
	StatusFailed FileStatus = "failed"
)

// String returns the string representation of FileStatus.
func (s FileStatus) String() string {
	return string(s)
}

// FileReport describes what happened to one input file.
//
// The coordinate statistics are only meaningful when Status is StatusOK.
// They are reported on the profile's sampling axis (X by default).
type FileReport struct {
	// Input is the path of the G-code file that was read.
	Input string `json:"input"`

	// Output is the path the rewritten file was (or would be, with dry-run)
	// written to. Empty when processing failed before a name was derived.
	Output string `json:"output,omitempty"`

	// Status is the processing outcome.
	Status FileStatus `json:"status"`

	// Samples is the number of coordinates that fed the statistics.
	Samples int `json:"samples"`

	// Min and Max are the extreme sampled coordinates.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Width is Max-Min rounded to two decimals.
	Width float64 `json:"width"`

	// Mean is the rounded arithmetic mean used to aim the push.
	Mean float64 `json:"mean"`

	// Injections counts end-of-print markers that received an ejection block.
	Injections int `json:"injections"`

	// DryRun is true when the output file was intentionally not written.
	DryRun bool `json:"dryRun,omitempty"`

	// Error holds the failure message for StatusFailed reports.
	Error string `json:"error,omitempty"`

	// Err is the underlying error, kept for errors.Is checks by callers.
	Err error `json:"-"`
}

// Failed returns true if the report describes a failed file.
func (r *FileReport) Failed() bool {
	return r.Status == StatusFailed
}

// Fail marks the report as failed with the given error.
func (r *FileReport) Fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
}

// BatchSummary aggregates the reports of one run.
type BatchSummary struct {
	// RunID correlates log lines belonging to the same run.
	RunID string `json:"runId"`

	// Total, Succeeded and Failed count files by outcome.
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// Files lists every report in processing order.
	Files []FileReport `json:"files"`
}

// Summarize builds a BatchSummary from a slice of reports.
// The reports are kept in the given order.
func Summarize(runID string, reports []FileReport) BatchSummary {
	summary := BatchSummary{
		RunID: runID,
		Total: len(reports),
		Files: reports,
	}
	if summary.Files == nil {
		summary.Files = []FileReport{}
	}
	for i := range reports {
		if reports[i].Failed() {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitProfileInvalid indicates the printer profile could not be loaded
	// or failed validation.
	ExitProfileInvalid ExitCode = 2

	// ExitInputNotFound indicates an input file or directory does not exist.
	ExitInputNotFound ExitCode = 3

	// ExitPartialFailure indicates at least one file in a batch failed.
	// Other files may have been written successfully.
	ExitPartialFailure ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
