package commissioning

import "errors"

// Commissioning errors (device/responder role only, Section 4.8).
var (
	// ErrUnsupportedOpcode is returned for a SecureChannel opcode this
	// coordinator does not route anywhere.
	ErrUnsupportedOpcode = errors.New("commissioning: unsupported opcode")

	// ErrInvalidDiscriminator indicates a discriminator outside the
	// 12-bit range.
	ErrInvalidDiscriminator = errors.New("commissioning: invalid discriminator")
)
