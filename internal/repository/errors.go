package repository

import "errors"

// ErrNotFound is returned when a single-record lookup matches no row.
var ErrNotFound = errors.New("not found")
