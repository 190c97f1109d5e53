package bridge

import "errors"

var (
	// ErrIncompleteConfig is returned by New when a required Config
	// field is nil.
	ErrIncompleteConfig = errors.New("bridge: incomplete configuration")

	// ErrAlreadyStarted is returned by Start if called more than once.
	ErrAlreadyStarted = errors.New("bridge: already started")

	// ErrClosed is returned by Start or Stop once Stop has already run.
	ErrClosed = errors.New("bridge: closed")
)
