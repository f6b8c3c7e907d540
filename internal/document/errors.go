package document

import "errors"

// Errors returned by store operations.
var (
	// ErrBlockNotFound indicates an operation referenced an unknown block id.
	ErrBlockNotFound = errors.New("block not found")
)
