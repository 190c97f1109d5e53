package commissioning

// State is the device's commissioning context state (Section 3).
type State int

const (
	// StateIdle is the initial state: no PASE handshake in progress.
	StateIdle State = iota

	// StatePaseStarted indicates a PASE handshake has been initiated by
	// a PBKDFParamRequest and has not yet completed or failed.
	StatePaseStarted

	// StateCommissioned indicates the device holds at least one active
	// fabric.
	StateCommissioned

	// StateError indicates the last PASE attempt failed (e.g. key
	// confirmation mismatch). A fresh PBKDFParamRequest starts over.
	StateError
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePaseStarted:
		return "PaseStarted"
	case StateCommissioned:
		return "Commissioned"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
