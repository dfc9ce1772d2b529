package apperr

import "errors"

// Sentinel error kinds shared by services and handlers. Services wrap these
// with context via fmt.Errorf("...: %w", ErrX); handlers classify with
// errors.Is to pick a response status.
var (
	// ErrInvalidInput indicates a malformed or self-referential request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the user or friend request does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates the actor may not perform this transition.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict indicates the transition clashes with the current state:
	// duplicate request, already friends, already processed, not friends.
	ErrConflict = errors.New("conflict")
	// ErrInfrastructure indicates the backing store failed or was unreachable.
	ErrInfrastructure = errors.New("infrastructure failure")
)
