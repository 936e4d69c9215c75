// ABOUTME: Errors reported by the record store
// ABOUTME: Callers recover from these locally; none are fatal

package store

import "errors"

// ErrIndexOutOfRange is returned when a position runs past the last record.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrStaleHandle is returned when a handle refers to a removed record.
var ErrStaleHandle = errors.New("stale record handle")
