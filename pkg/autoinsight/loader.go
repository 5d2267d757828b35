package autoinsight

import (
	"context"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// DataLoader resolves a data file into an in-memory table plus metadata.
// Implementations are immutable after construction and safe for concurrent
// use by multiple goroutines.
type DataLoader interface {
	// CheckFileSize reports whether the file at path fits the tier limit,
	// along with its measured size in megabytes. Only filesystem metadata
	// is consulted; the file content is not read.
	CheckFileSize(path string) (withinLimit bool, sizeMB float64, err error)

	// DetectEncoding sniffs the character encoding of a text file from at
	// most its first EncodingSampleBytes bytes, returning DefaultEncoding
	// when the detector has no confident answer (an empty file included).
	DetectEncoding(path string) (string, error)

	// Load reads the file at path into a table and builds its metadata.
	// A load either fully succeeds, with metadata row and column counts
	// matching the table, or fails with one of the typed errors:
	// ErrNotFound, ErrQuotaExceeded, ErrUnsupportedFormat,
	// ErrInvalidOptions, ErrReadFailure.
	Load(ctx context.Context, path string, opts LoadOptions) (*dataframe.DataFrame, *LoadMetadata, error)

	// Sample returns the first n rows as a new table, leaving the input
	// untouched. All rows are returned when n exceeds the row count.
	Sample(df *dataframe.DataFrame, n int) *dataframe.DataFrame
}
