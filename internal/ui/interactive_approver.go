package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. It asks before outputs from a previous run are
// overwritten; anything but an explicit yes denies.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin.
func NewInteractiveApprover(verbose bool) autoinsight.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user with a yes/no question for target.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s already exists and will be overwritten.\n", target)
	fmt.Fprint(a.output, "Continue? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case line := <-inputChan:
		switch strings.ToLower(line) {
		case "y", "yes":
			fmt.Fprintln(a.output, "Overwriting previous outputs.")
			return true, nil
		default:
			fmt.Fprintln(a.output, "Keeping existing outputs. Operation cancelled.")
			return false, nil
		}
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ autoinsight.Approver = (*InteractiveApprover)(nil)
