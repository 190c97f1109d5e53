package discovery

import "errors"

// Package-level sentinel errors for discovery operations.
var (
	// ErrClosed is returned when an operation is attempted on a closed advertiser.
	ErrClosed = errors.New("discovery: closed")

	// ErrAlreadyStarted is returned by Start when advertising is already active.
	ErrAlreadyStarted = errors.New("discovery: already started")

	// ErrNotStarted is returned by Stop when advertising was never started.
	ErrNotStarted = errors.New("discovery: not started")

	// ErrInvalidDiscriminator is returned when the discriminator exceeds
	// its 12-bit range.
	ErrInvalidDiscriminator = errors.New("discovery: invalid discriminator (must be 0-4095)")
)
