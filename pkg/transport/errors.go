package transport

import "errors"

// Transport errors.
var (
	// ErrClosed is returned when an operation is attempted on a closed transport.
	ErrClosed = errors.New("transport: closed")

	// ErrInvalidAddress is returned for a send on an unrecognized local port.
	ErrInvalidAddress = errors.New("transport: invalid address")

	// ErrAlreadyStarted is returned when Start is called on an already running transport.
	ErrAlreadyStarted = errors.New("transport: already started")

	// ErrMessageTooLarge is returned when a message exceeds MaxPacketSize.
	ErrMessageTooLarge = errors.New("transport: message too large")
)
