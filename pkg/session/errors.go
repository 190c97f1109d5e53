package session

import "errors"

var (
	// ErrSessionLimitReached is returned when Add is called with the
	// table already at MaxSessions.
	ErrSessionLimitReached = errors.New("session: limit reached")

	// ErrSessionNotFound is returned when an operation references a
	// session id that is not (or no longer) present in the table.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrAuthFailure is returned when CCM tag verification fails during
	// Decrypt. No partial plaintext is ever returned.
	ErrAuthFailure = errors.New("session: authentication failure")

	// ErrReplayDetected is returned when an inbound message counter does
	// not strictly exceed the last accepted counter for the session.
	ErrReplayDetected = errors.New("session: replay detected")

	// ErrInvalidSessionID rejects session id 0, which is reserved for
	// unsecured messages and is never stored in the table.
	ErrInvalidSessionID = errors.New("session: id 0 is reserved for unsecured messages")

	// ErrInvalidKeySize is returned when a key other than 16 bytes is supplied.
	ErrInvalidKeySize = errors.New("session: key must be 16 bytes")
)
