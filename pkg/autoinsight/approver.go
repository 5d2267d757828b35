package autoinsight

import "context"

// Approver handles user interaction for approval workflows, in particular
// before overwriting files a previous run already produced.
//
// Implementations:
//   - ForcedApprover: approves immediately, used with --force
//   - InteractiveApprover: prompts the user for confirmation
type Approver interface {
	// RequestApproval asks for confirmation before overwriting target.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
