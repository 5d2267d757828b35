package metadata

import (
	"errors"
	"fmt"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Validate checks that load metadata agrees with the table it claims to
// describe. All problems are reported together.
func Validate(meta *autoinsight.LoadMetadata, rows, columns int) error {
	if meta == nil {
		return errors.New("metadata is nil")
	}

	var errs []error
	if meta.Filename == "" {
		errs = append(errs, errors.New("filename is empty"))
	}
	if !meta.Format.IsValid() {
		errs = append(errs, fmt.Errorf("format %q is not recognized", meta.Format))
	}
	if meta.Rows != rows {
		errs = append(errs, fmt.Errorf("metadata reports %d rows but the table has %d", meta.Rows, rows))
	}
	if meta.Columns != columns {
		errs = append(errs, fmt.Errorf("metadata reports %d columns but the table has %d", meta.Columns, columns))
	}
	if meta.SizeMB < 0 {
		errs = append(errs, fmt.Errorf("size %v MB is negative", meta.SizeMB))
	}
	if meta.MemoryUsageMB < 0 {
		errs = append(errs, fmt.Errorf("memory usage %v MB is negative", meta.MemoryUsageMB))
	}
	return errors.Join(errs...)
}
