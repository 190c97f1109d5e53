package spake2p

import (
	"math/big"

	"flarebridge/matter-core/pkg/crypto"
)

// PBKDFOutputSize is the number of bytes PBKDF2 must produce to split
// into w0 and w1 (32 bytes each), per Section 4.5.
const PBKDFOutputSize = 2 * GroupSizeBytes

// PBKDFIterations is the fixed iteration count this core uses for the
// PASE passcode derivation (Section 4.5).
const PBKDFIterations = 2000

// ErrInvalidPasscode is returned when a setup PIN fails the exactly-8-ASCII-digit
// constraint checked at PASE context initialization.
var ErrInvalidPasscode error = errInvalidPasscode{}

type errInvalidPasscode struct{}

func (errInvalidPasscode) Error() string { return "spake2p: setup PIN must be exactly 8 ASCII digits" }

// ValidatePasscode checks that pin is exactly 8 ASCII digit characters,
// the constraint §4.5 enforces at PASE context init.
func ValidatePasscode(pin []byte) error {
	if len(pin) != 8 {
		return ErrInvalidPasscode
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return ErrInvalidPasscode
		}
	}
	return nil
}

// ComputeW0W1 derives w0 and w1 (each 32 bytes, reduced mod the P-256
// group order) from the setup PIN and salt via
// PBKDF2-HMAC-SHA256(pin, salt, PBKDFIterations, 64), split into two
// 32-byte halves, each reduced mod N directly (no widening of the PBKDF2
// output for bias reduction, unlike the full Matter specification's
// extra-width reduction).
func ComputeW0W1(pin, salt []byte) (w0, w1 []byte, err error) {
	ws := crypto.PBKDF2SHA256(pin, salt, PBKDFIterations, PBKDFOutputSize)
	w0 = reduceModN(ws[:GroupSizeBytes])
	w1 = reduceModN(ws[GroupSizeBytes:])
	return w0, w1, nil
}

// ComputeL computes the verifier point L = w1*G (base-point multiply),
// returned in uncompressed 65-byte form.
func ComputeL(w1 []byte) []byte {
	x, y := p256.ScalarBaseMult(w1)
	return encodePoint(&point{x: x, y: y})
}

func reduceModN(b []byte) []byte {
	n := p256.Params().N
	v := new(big.Int).SetBytes(b)
	v.Mod(v, n)
	out := make([]byte, GroupSizeBytes)
	v.FillBytes(out)
	return out
}
