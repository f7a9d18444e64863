package domain

import "errors"

var (
	// ErrStringNotFound signals a lookup or delete on a value that is not stored.
	ErrStringNotFound = errors.New("string not found")
	// ErrAlreadyExists signals an insert of a value that is already stored.
	ErrAlreadyExists = errors.New("string already exists")
	// ErrInvalidValue signals a value rejected by input validation.
	ErrInvalidValue = errors.New("invalid value")
	// ErrCorruptEntry signals a stored record whose id no longer matches its value.
	ErrCorruptEntry = errors.New("corrupt entry")
	// ErrFactUnavailable signals a fact provider failure.
	ErrFactUnavailable = errors.New("fact provider unavailable")
)
