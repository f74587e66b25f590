package kitchen

import "errors"

// Failure taxonomy for runtime operations. Every rejected operation wraps one
// of these sentinels so callers can classify failures with errors.Is without
// string matching. None of them is ever raised as a panic; the tick loop
// treats all of them as return values.
var (
	// ErrInvalidOperation marks an operation disallowed by current state,
	// e.g. placing an already-cut item on a cutting board.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAuthorityViolation marks a request whose claimed actor does not
	// match the sending connection. Never applied, always logged.
	ErrAuthorityViolation = errors.New("authority violation")

	// ErrUnavailable marks a resource held elsewhere: station locked by
	// another actor, plate at capacity, dispenser on cooldown.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrNotFound marks an unknown item, recipe, order, or station id.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthority marks a state mutation attempted by a replica.
	ErrNotAuthority = errors.New("not the authority")
)
