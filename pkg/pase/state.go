package pase

// State is the PASE responder state machine (Section 4.5).
type State int

const (
	StateIdle State = iota
	StateInitialized
	StatePbkdfReqReceived
	StatePbkdfRespSent
	StatePake1Received
	StatePake2Sent
	StatePake3Received
	StateCompleted
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitialized:
		return "Initialized"
	case StatePbkdfReqReceived:
		return "PbkdfReqReceived"
	case StatePbkdfRespSent:
		return "PbkdfRespSent"
	case StatePake1Received:
		return "Pake1Received"
	case StatePake2Sent:
		return "Pake2Sent"
	case StatePake3Received:
		return "Pake3Received"
	case StateCompleted:
		return "Completed"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
