package message

import "errors"

// BuildPlaintext concatenates the protocol header and application payload
// into the plaintext that is sealed by the session manager for secured
// messages (session id != 0), or written directly after the message
// header for unsecured messages (session id == 0).
func BuildPlaintext(ph ProtocolHeader, payload []byte) []byte {
	buf := make([]byte, 0, ProtocolHeaderLen+len(payload))
	buf = ph.Encode(buf)
	buf = append(buf, payload...)
	return buf
}

// EncodeUnsecured builds a complete unsecured wire message: header (with
// SessionID 0) followed directly by the protocol header and payload.
func EncodeUnsecured(h Header, ph ProtocolHeader, payload []byte) ([]byte, error) {
	h.SessionID = 0
	plaintext := BuildPlaintext(ph, payload)
	out := make([]byte, 0, h.EncodedLen()+len(plaintext))
	out = h.Encode(out)
	out = append(out, plaintext...)
	if len(out) > MaxMessageSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// DecodeUnsecured parses a complete unsecured wire message produced by
// EncodeUnsecured. It fails if the header's session id is not zero.
func DecodeUnsecured(data []byte) (Header, ProtocolHeader, []byte, error) {
	h, rest, err := DecodeHeader(data)
	if err != nil {
		return Header{}, ProtocolHeader{}, nil, err
	}
	if h.SessionID != 0 {
		return Header{}, ProtocolHeader{}, nil, errors.New("message: unsecured message has nonzero session id")
	}
	ph, payload, err := DecodeProtocolHeader(rest)
	if err != nil {
		return Header{}, ProtocolHeader{}, nil, err
	}
	return h, ph, payload, nil
}

// EncodeSecuredEnvelope assembles the wire message for a secured
// message: the plaintext message header followed by the already-sealed
// ciphertext (protocol header + payload + CCM tag) produced by the
// session manager.
func EncodeSecuredEnvelope(h Header, sealed []byte) ([]byte, error) {
	out := make([]byte, 0, h.EncodedLen()+len(sealed))
	out = h.Encode(out)
	out = append(out, sealed...)
	if len(out) > MaxMessageSize {
		return nil, ErrTooLarge
	}
	return out, nil
}
