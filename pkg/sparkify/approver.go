package sparkify

import "context"

// Approver confirms destructive operations, in this tool the drop and
// recreate of the analytics database.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type database name for confirmation
//   - NonInteractiveApprover: Refuses, for runs without a terminal
type Approver interface {
	// RequestApproval returns true if dropping dbName was approved.
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
