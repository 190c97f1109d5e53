// Package pase implements the responder (device/verifier) side of
// Passcode-Authenticated Session Establishment, the SPAKE2+ handshake
// used during commissioning (Section 4.5). This core only ever plays
// the verifier role: the controller is the prover and always initiates.
package pase

import (
	"errors"
	"time"
)

const (
	// ContextPrefix seeds the SPAKE2+ transcript context, matching the
	// controller's expected commissioning context string.
	ContextPrefix = "CHIP PAKE V1 Commissioning"

	// SaltSize is the length of the PBKDF2 salt the device generates
	// when answering a PBKDFParamRequest.
	SaltSize = 32

	// SessionKeyInfo is the HKDF info label used when deriving the
	// installed session key from the SPAKE2+ shared secret.
	SessionKeyInfo = "CHIP PASE Session Keys"

	// SessionKeySize is the length of the key installed into the
	// session table on a successful handshake.
	SessionKeySize = 16

	// StallTimeout resets a handshake that has gone idle this long
	// back to Idle (Section 9: unspecified in the source, 60s default).
	StallTimeout = 60 * time.Second
)

var (
	ErrInvalidState       = errors.New("pase: invalid protocol state")
	ErrInvalidMessage     = errors.New("pase: invalid message")
	ErrConfirmationFailed = errors.New("pase: key confirmation failed")
)
