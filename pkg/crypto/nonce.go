package crypto

import "encoding/binary"

// SessionNonceSize is the AES-CCM nonce length used for secured messages.
const SessionNonceSize = 13

// BuildSessionNonce constructs the 13-byte CCM nonce for a secured
// message: session_id_be(2) || message_counter_be(4) || 0x00 x 7
// (Section 4.4). Unlike the full Matter specification, this core uses a
// single nonce construction shared by both directions of a session; the
// session id and per-message counter together guarantee uniqueness for
// the lifetime of the session.
func BuildSessionNonce(sessionID uint16, messageCounter uint32) [SessionNonceSize]byte {
	var nonce [SessionNonceSize]byte
	binary.BigEndian.PutUint16(nonce[0:2], sessionID)
	binary.BigEndian.PutUint32(nonce[2:6], messageCounter)
	return nonce
}
