package offline

// State tracks the single envelope a Transport is handling.
type State int

const (
	StateIdle State = iota
	StateBuildingEnvelope
	StateSerialized
	// StateAbortedBySentinel is the terminal state of a successful write.
	StateAbortedBySentinel
	// StateFailed is the terminal state when the message could not be written.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuildingEnvelope:
		return "building-envelope"
	case StateSerialized:
		return "serialized"
	case StateAbortedBySentinel:
		return "aborted-by-sentinel"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
