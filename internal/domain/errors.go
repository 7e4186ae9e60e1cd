// Package domain holds the errors shared by every repository implementation.
package domain

import "errors"

var (
	// ErrNotFound means the addressed row does not exist (or is no longer in
	// the state the operation needs).
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a uniqueness rule rejected the write.
	ErrDuplicate = errors.New("duplicate")
	// ErrInUse means other rows still reference the target.
	ErrInUse = errors.New("in use")
)
