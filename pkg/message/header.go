// Package message implements the Matter message header and protocol
// header framing described in Section 3/4.2 of the core specification.
package message

import "encoding/binary"

// MaxMessageSize is the largest message the transport will send or
// accept, matching the IPv6 minimum MTU.
const MaxMessageSize = 1280

// MessageVersion is the only header version this core emits or accepts.
const MessageVersion = 0

const (
	flagVersionMask  = 0x0F
	flagSourcePresent = 1 << 4
	flagDestSizeMask  = 0x60
	flagDestSizeShift = 5

	destSizeAbsent = 0
	destSizePresent8 = 2 // bits 5-6 = 10
)

// Header is the 8-24 byte Matter message header (Section 3).
type Header struct {
	SessionID      uint16
	SecurityFlags  uint8
	MessageCounter uint32
	SourceNodeID   *uint64
	DestNodeID     *uint64
}

// EncodedLen returns the number of bytes Encode will produce for h.
func (h Header) EncodedLen() int {
	n := 1 + 2 + 1 + 4
	if h.SourceNodeID != nil {
		n += 8
	}
	if h.DestNodeID != nil {
		n += 8
	}
	return n
}

// Encode appends the wire encoding of h to dst and returns the result.
func (h Header) Encode(dst []byte) []byte {
	var flags uint8 = MessageVersion & flagVersionMask
	if h.SourceNodeID != nil {
		flags |= flagSourcePresent
	}
	if h.DestNodeID != nil {
		flags |= destSizePresent8 << flagDestSizeShift
	}

	dst = append(dst, flags)
	dst = binary.LittleEndian.AppendUint16(dst, h.SessionID)
	dst = append(dst, h.SecurityFlags)
	dst = binary.LittleEndian.AppendUint32(dst, h.MessageCounter)
	if h.SourceNodeID != nil {
		dst = binary.LittleEndian.AppendUint64(dst, *h.SourceNodeID)
	}
	if h.DestNodeID != nil {
		dst = binary.LittleEndian.AppendUint64(dst, *h.DestNodeID)
	}
	return dst
}

// DecodeHeader parses a Header from the front of data, returning the
// header and the remaining (unconsumed) bytes.
func DecodeHeader(data []byte) (Header, []byte, error) {
	if len(data) < 8 {
		return Header{}, nil, ErrTruncated
	}

	flags := data[0]
	if flags&flagVersionMask != MessageVersion {
		return Header{}, nil, ErrInvalidVersion
	}

	destSize := (flags & flagDestSizeMask) >> flagDestSizeShift
	if destSize != destSizeAbsent && destSize != destSizePresent8 {
		return Header{}, nil, ErrInvalidFlags
	}

	h := Header{
		SessionID:      binary.LittleEndian.Uint16(data[1:3]),
		SecurityFlags:  data[3],
		MessageCounter: binary.LittleEndian.Uint32(data[4:8]),
	}
	rest := data[8:]

	if flags&flagSourcePresent != 0 {
		if len(rest) < 8 {
			return Header{}, nil, ErrTruncated
		}
		v := binary.LittleEndian.Uint64(rest[:8])
		h.SourceNodeID = &v
		rest = rest[8:]
	}

	if destSize == destSizePresent8 {
		if len(rest) < 8 {
			return Header{}, nil, ErrTruncated
		}
		v := binary.LittleEndian.Uint64(rest[:8])
		h.DestNodeID = &v
		rest = rest[8:]
	}

	return h, rest, nil
}
