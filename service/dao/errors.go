package dao

import "errors"

var (
	// ErrNotFound is returned when the requested run does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for an empty run ID.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
