package repository

import "errors"

var (
	// ErrNoMatch indicates a conditional query matched no edge: the target is
	// absent, or its current state failed the query's guard. The service
	// layer disambiguates which.
	ErrNoMatch = errors.New("no matching edge")
)
