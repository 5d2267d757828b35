package autoinsight

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the load and report failure taxonomy.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, _, err := loader.Load(ctx, path, opts)
//	if errors.Is(err, autoinsight.ErrQuotaExceeded) {
//	    // Suggest a smaller file or a tier upgrade
//	}
var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrQuotaExceeded indicates the file size exceeds the tier limit.
	ErrQuotaExceeded = errors.New("file size exceeds tier limit")

	// ErrUnsupportedFormat indicates the file extension is not in the
	// fixed format mapping.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrReadFailure indicates the format reader could not parse the file.
	ErrReadFailure = errors.New("read failure")

	// ErrInvalidOptions indicates a reader option that is unrecognized for
	// the dispatched format or carries an out-of-range value.
	ErrInvalidOptions = errors.New("invalid reader options")

	// ErrInvalidConfig indicates the provided run configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrReportNotAllowed indicates a PDF report was requested on a tier
	// without PDF support.
	ErrReportNotAllowed = errors.New("pdf reports not included in tier")

	// ErrApprovalDenied indicates the user denied an overwrite approval.
	ErrApprovalDenied = errors.New("approval denied")
)

// QuotaError reports a file whose size exceeds the tier limit. The check
// runs before any content is read, so the file never enters memory.
type QuotaError struct {
	SizeMB  float64
	LimitMB float64
	Tier    Tier
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("file size %.2f MB exceeds the %s tier limit of %.2f MB", e.SizeMB, e.Tier, e.LimitMB)
}

func (e *QuotaError) Unwrap() error { return ErrQuotaExceeded }

// FormatError reports a file extension outside the fixed format mapping.
type FormatError struct {
	Extension string
}

func (e *FormatError) Error() string {
	if e.Extension == "" {
		return "file has no extension"
	}
	return fmt.Sprintf("unsupported file format %q", e.Extension)
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }

// OptionError reports a reader option that does not apply to the
// dispatched format.
type OptionError struct {
	Option string
	Format Format
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %q is not recognized for %s input", e.Option, e.Format)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOptions }

// ReadError wraps a failure from a format reader, preserving the original
// message. The wrapped cause stays inspectable through errors.Is/As.
type ReadError struct {
	Format Format
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s data from %s: %v", e.Format, e.Path, e.Err)
}

func (e *ReadError) Unwrap() []error { return []error{ErrReadFailure, e.Err} }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidOptions):
		return ExitConfigError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return ExitQuotaExceeded
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrReadFailure):
		return ExitReadFailure
	case errors.Is(err, ErrReportNotAllowed):
		return ExitReportDenied
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	// Cobra reports flag and argument misuse as plain errors; match the
	// known message shapes so they exit with the usage code.
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "required flag") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.HasPrefix(errStr, "missing required argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
