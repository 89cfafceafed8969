package repository

import "errors"

var (
	// ErrNotFound is returned by mutating operations whose target record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key is already taken
	ErrConflict = errors.New("record already exists")
)
