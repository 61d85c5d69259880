package gait

import "errors"

var (
	// ErrBoutMismatch reports a labelling stream whose bout starts and stops
	// do not pair up. It aborts processing of the whole recording.
	ErrBoutMismatch = errors.New("starts and stops of bouts do not match")

	// ErrInvalidInput reports missing or malformed recording arrays.
	ErrInvalidInput = errors.New("invalid gait input")

	// ErrInvalidConfig reports configuration values the pipeline cannot honour.
	ErrInvalidConfig = errors.New("invalid gait configuration")
)
