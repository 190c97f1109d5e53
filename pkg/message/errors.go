package message

import "errors"

var (
	// ErrTooLarge is returned when a message exceeds MaxMessageSize.
	ErrTooLarge = errors.New("message: exceeds maximum size")

	// ErrTruncated is returned when a buffer ends before a complete
	// header or protocol header can be parsed.
	ErrTruncated = errors.New("message: truncated")

	// ErrInvalidVersion is returned when the header's version nibble is
	// not the supported value (0).
	ErrInvalidVersion = errors.New("message: invalid version")

	// ErrInvalidFlags is returned when the flags byte encodes an
	// unsupported destination-node-id size.
	ErrInvalidFlags = errors.New("message: invalid flags")
)
