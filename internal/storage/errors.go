// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across data file formats

package storage

import "errors"

// ErrNotFound is returned when a data file or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// ErrMalformed is returned when input cannot be parsed as sighting data.
var ErrMalformed = errors.New("malformed input")
