package autoinsight_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func TestQuotaError(t *testing.T) {
	err := &autoinsight.QuotaError{SizeMB: 3.72, LimitMB: 2.5, Tier: autoinsight.TierFree}

	if !errors.Is(err, autoinsight.ErrQuotaExceeded) {
		t.Error("QuotaError should unwrap to ErrQuotaExceeded")
	}
	want := "file size 3.72 MB exceeds the free tier limit of 2.50 MB"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"with extension", ".xyz", `unsupported file format ".xyz"`},
		{"no extension", "", "file has no extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &autoinsight.FormatError{Extension: tt.ext}
			if !errors.Is(err, autoinsight.ErrUnsupportedFormat) {
				t.Error("FormatError should unwrap to ErrUnsupportedFormat")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestReadError(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := &autoinsight.ReadError{Format: autoinsight.FormatCSV, Path: "data/sales.csv", Err: cause}

	if !errors.Is(err, autoinsight.ErrReadFailure) {
		t.Error("ReadError should unwrap to ErrReadFailure")
	}
	if !errors.Is(err, cause) {
		t.Error("ReadError should preserve the original cause")
	}
	want := "reading csv data from data/sales.csv: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOptionError(t *testing.T) {
	err := &autoinsight.OptionError{Option: "sheet", Format: autoinsight.FormatCSV}

	if !errors.Is(err, autoinsight.ErrInvalidOptions) {
		t.Error("OptionError should unwrap to ErrInvalidOptions")
	}
	want := `option "sheet" is not recognized for csv input`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, autoinsight.ExitSuccess},
		{"not found", fmt.Errorf("load: %w", autoinsight.ErrNotFound), autoinsight.ExitNotFound},
		{"quota", &autoinsight.QuotaError{SizeMB: 5, LimitMB: 2.5, Tier: autoinsight.TierFree}, autoinsight.ExitQuotaExceeded},
		{"unsupported format", &autoinsight.FormatError{Extension: ".xyz"}, autoinsight.ExitUnsupportedFormat},
		{"read failure", &autoinsight.ReadError{Format: autoinsight.FormatJSON, Path: "x.json", Err: errors.New("bad token")}, autoinsight.ExitReadFailure},
		{"invalid config", fmt.Errorf("tier: %w", autoinsight.ErrInvalidConfig), autoinsight.ExitConfigError},
		{"invalid options", &autoinsight.OptionError{Option: "sheet", Format: autoinsight.FormatCSV}, autoinsight.ExitConfigError},
		{"report denied", autoinsight.ErrReportNotAllowed, autoinsight.ExitReportDenied},
		{"approval denied", autoinsight.ErrApprovalDenied, autoinsight.ExitApprovalDenied},
		{"generic", errors.New("boom"), autoinsight.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := autoinsight.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag --foo"), autoinsight.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), autoinsight.ExitUsageError},
		{"unknown command", errors.New(`unknown command "analyse" for "autoinsight"`), autoinsight.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), autoinsight.ExitUsageError},
		{"required flag", errors.New("required flag \"tier\" not set"), autoinsight.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--rows\""), autoinsight.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <input_file>"), autoinsight.ExitUsageError},
		{"general error", errors.New("something went wrong"), autoinsight.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := autoinsight.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError() = %d, want %d", got, tt.want)
			}
		})
	}
}
