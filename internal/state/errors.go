package state

import "errors"

// Sentinel errors reported to the command boundary. Handlers translate
// these into user-visible replies; they never reach the scheduler or the
// broadcast engine.
var (
	// ErrPermissionDenied indicates the requestor lacks owner or admin
	// standing for a privileged operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument indicates malformed command input; no state was
	// mutated.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotAuthorized indicates a revocation target that was not in the
	// authorization list. It is informational, not a fault.
	ErrNotAuthorized = errors.New("user not in authorization list")
)
