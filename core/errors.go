package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested document, post or asset does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIO is returned when storage could not be read or enumerated.
	ErrIO = errors.New("storage error")
	// ErrInvalidPath is returned for names that would resolve outside of their content directory.
	// It always wraps ErrNotFound so callers never have to tell the two apart.
	ErrInvalidPath = fmt.Errorf("invalid path: %w", ErrNotFound)
	// ErrRouteNotMatched is returned when no route handles the request path.
	ErrRouteNotMatched = errors.New("route not matched")
)
