package message

// ProtocolID is the Interaction Model protocol identifier (Section 4.6).
const ProtocolID uint16 = 0x0001

// Opcode represents an Interaction Model message opcode.
type Opcode uint8

const (
	OpcodeStatusResponse    Opcode = 0x01
	OpcodeReadRequest       Opcode = 0x02
	OpcodeSubscribeRequest  Opcode = 0x03
	OpcodeSubscribeResponse Opcode = 0x04
	OpcodeReportData        Opcode = 0x05
)

// String returns the name of the opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeStatusResponse:
		return "StatusResponse"
	case OpcodeReadRequest:
		return "ReadRequest"
	case OpcodeSubscribeRequest:
		return "SubscribeRequest"
	case OpcodeSubscribeResponse:
		return "SubscribeResponse"
	case OpcodeReportData:
		return "ReportData"
	default:
		return "Unknown"
	}
}
