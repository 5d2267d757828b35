package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval. It approves overwrites immediately and is used when the
// --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) autoinsight.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr}
}

// RequestApproval approves the overwrite without prompting.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.verbose {
		fmt.Fprintf(a.output, "Overwriting %s (forced)\n", target)
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ autoinsight.Approver = (*ForcedApprover)(nil)
