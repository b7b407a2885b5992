package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// unique key already taken (username, slug, table number)
	ErrConflict = errors.New("conflict")
)
