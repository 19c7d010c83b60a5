package core

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput wraps every validation failure of caller supplied data.
	ErrInvalidInput = errors.New("invalid input")
)
