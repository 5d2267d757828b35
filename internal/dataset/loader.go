package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Loader reads tabular files into frames while enforcing the package
// tier's size quota. It implements autoinsight.DataLoader.
type Loader struct {
	fs      filesystem.Provider
	logger  autoinsight.Logger
	tier    autoinsight.Tier
	limitMB float64
}

// NewLoader creates a Loader for the given package tier. Unknown tiers
// fall back to the most restrictive limit and are reported once here
// rather than on every load.
func NewLoader(provider filesystem.Provider, logger autoinsight.Logger, tier autoinsight.Tier) *Loader {
	if provider == nil {
		panic("filesystem provider cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	normalized := autoinsight.ParseTier(string(tier))
	if !normalized.IsValid() {
		logger.Info("warning: unknown package tier %q, applying the %.1f MB fallback limit", string(tier), autoinsight.FallbackLimitMB)
	}

	return &Loader{
		fs:      provider,
		logger:  logger,
		tier:    normalized,
		limitMB: normalized.LimitMB(),
	}
}

// Tier returns the normalized package tier the loader enforces.
func (l *Loader) Tier() autoinsight.Tier {
	return l.tier
}

// CheckFileSize reports whether the file at path fits within the tier's
// quota, along with its size in megabytes. Only file metadata is
// consulted; the content is never read.
func (l *Loader) CheckFileSize(path string) (bool, float64, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, 0, fmt.Errorf("%s: %w", path, autoinsight.ErrNotFound)
		}
		return false, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, 0, fmt.Errorf("%s is a directory: %w", path, autoinsight.ErrReadFailure)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	return sizeMB <= l.limitMB, sizeMB, nil
}

// DetectEncoding sniffs the text encoding from the head of the file.
// Inconclusive detection reports the utf-8 default rather than failing.
func (l *Loader) DetectEncoding(path string) (string, error) {
	rc, err := l.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, autoinsight.ErrNotFound)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	sample, err := io.ReadAll(io.LimitReader(rc, autoinsight.EncodingSampleBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	encoding := sniffEncoding(sample)
	l.logger.Verbose("detected %s encoding for %s", encoding, filepath.Base(path))
	return encoding, nil
}

// Load reads the file at path into a typed frame. Checks run in a fixed
// order: existence, then the size quota against file metadata alone,
// then format resolution from the extension, then per-format option
// validation, and only then the content read and parse.
func (l *Loader) Load(ctx context.Context, path string, opts autoinsight.LoadOptions) (*dataframe.DataFrame, *autoinsight.LoadMetadata, error) {
	fits, sizeMB, err := l.CheckFileSize(path)
	if err != nil {
		return nil, nil, err
	}
	if !fits {
		return nil, nil, &autoinsight.QuotaError{SizeMB: sizeMB, LimitMB: l.limitMB, Tier: l.tier}
	}
	l.logger.Verbose("%s is %.2f MB, within the %s tier limit of %.2f MB", filepath.Base(path), sizeMB, l.tier, l.limitMB)

	format, ok := autoinsight.FormatForPath(path)
	if !ok {
		return nil, nil, &autoinsight.FormatError{Extension: strings.ToLower(filepath.Ext(path))}
	}
	if err := opts.ValidateFor(format); err != nil {
		return nil, nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, nil, &autoinsight.ReadError{Format: format, Path: path, Err: err}
	}

	df, err := l.parse(ctx, format, path, data, opts)
	if err != nil {
		return nil, nil, &autoinsight.ReadError{Format: format, Path: path, Err: err}
	}

	meta := &autoinsight.LoadMetadata{
		Filename:      filepath.Base(path),
		Format:        format,
		SizeMB:        round2(sizeMB),
		Rows:          df.NRows(),
		Columns:       len(df.Series),
		Package:       l.tier,
		MemoryUsageMB: round2(FootprintMB(df)),
	}
	l.logger.Verbose("loaded %s: %d rows, %d columns, %.2f MB in memory", meta.Filename, meta.Rows, meta.Columns, meta.MemoryUsageMB)
	return df, meta, nil
}

// parse dispatches to the reader for the resolved format. Delimited
// text is decoded to UTF-8 first; the other formats define their own
// encodings.
func (l *Loader) parse(ctx context.Context, format autoinsight.Format, path string, data []byte, opts autoinsight.LoadOptions) (*dataframe.DataFrame, error) {
	switch format {
	case autoinsight.FormatCSV:
		sample := data
		if len(sample) > autoinsight.EncodingSampleBytes {
			sample = sample[:autoinsight.EncodingSampleBytes]
		}
		encoding := sniffEncoding(sample)
		if encoding != autoinsight.DefaultEncoding {
			l.logger.Verbose("decoding %s from %s", filepath.Base(path), encoding)
		}
		decoded, err := decodeText(data, encoding)
		if err != nil {
			return nil, err
		}
		return readCSV(ctx, decoded, opts)
	case autoinsight.FormatExcel:
		return readExcel(data, opts)
	case autoinsight.FormatJSON:
		return readJSON(data)
	case autoinsight.FormatParquet:
		return readParquet(ctx, data)
	default:
		return nil, fmt.Errorf("no reader for format %q", format)
	}
}

// Sample returns a copy of the first n rows without modifying the
// frame. Non-positive n applies the default sample size.
func (l *Loader) Sample(df *dataframe.DataFrame, n int) *dataframe.DataFrame {
	if df == nil {
		return nil
	}
	if n <= 0 {
		n = autoinsight.DefaultSampleRows
	}
	return Head(df, n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
