package entity

import "errors"

// Sentinel errors returned by repository implementations. The usecase layer
// translates them into its own error taxonomy.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrVersionConflict    = errors.New("version conflict: record was modified concurrently")
)
