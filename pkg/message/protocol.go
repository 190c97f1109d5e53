package message

import "encoding/binary"

// Protocol IDs routed by the coordinator (Section 4.11).
const (
	ProtocolSecureChannel   uint16 = 0x0000
	ProtocolInteractionModel uint16 = 0x0001
)

// SecureChannel opcodes (Section 4.8). Each response opcode is
// request+1, including OpcodePAKEStatusReport for PAKE3.
const (
	OpcodePBKDFParamRequest  uint8 = 0x20
	OpcodePBKDFParamResponse uint8 = 0x21
	OpcodePAKE1              uint8 = 0x22
	OpcodePAKE2              uint8 = 0x23
	OpcodePAKE3              uint8 = 0x24
	OpcodePAKEStatusReport   uint8 = 0x25
)

// Interaction Model opcodes (Section 4.6). OpcodeStatusResponse
// answers a request the coordinator cannot otherwise dispatch (Section
// 4.11's "all others currently return failure").
const (
	OpcodeStatusResponse    uint8 = 0x01
	OpcodeReadRequest       uint8 = 0x02
	OpcodeSubscribeRequest  uint8 = 0x03
	OpcodeSubscribeResponse uint8 = 0x04
	OpcodeReportData        uint8 = 0x05
)

// ProtocolHeaderLen is the encoded size of a ProtocolHeader.
const ProtocolHeaderLen = 5

// ProtocolHeader identifies the protocol, opcode, and exchange a secured
// or unsecured payload belongs to. It is carried inside the CCM
// plaintext for secured messages, and directly after the message header
// for session 0 (Section 3).
type ProtocolHeader struct {
	ProtocolID uint16
	Opcode     uint8
	ExchangeID uint16
}

// Encode appends the wire encoding of ph to dst.
func (ph ProtocolHeader) Encode(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, ph.ProtocolID)
	dst = append(dst, ph.Opcode)
	dst = binary.LittleEndian.AppendUint16(dst, ph.ExchangeID)
	return dst
}

// DecodeProtocolHeader parses a ProtocolHeader from the front of data,
// returning it along with the remaining application payload.
func DecodeProtocolHeader(data []byte) (ProtocolHeader, []byte, error) {
	if len(data) < ProtocolHeaderLen {
		return ProtocolHeader{}, nil, ErrTruncated
	}
	ph := ProtocolHeader{
		ProtocolID: binary.LittleEndian.Uint16(data[0:2]),
		Opcode:     data[2],
		ExchangeID: binary.LittleEndian.Uint16(data[3:5]),
	}
	return ph, data[ProtocolHeaderLen:], nil
}
