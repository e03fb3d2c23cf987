package frame

// State is the lifecycle state of a Frame.
type State int

const (
	// Created is the state of a frame fresh out of New().
	Created State = iota

	// Configuring is entered on the first mutation.
	Configuring

	// Sealed means checksums were computed and the wire bytes encoded.
	Sealed

	// Sent is terminal: the last transmission succeeded.
	Sent

	// Failed is terminal: the last transmission failed, see Frame.Err().
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Configuring:
		return "configuring"
	case Sealed:
		return "sealed"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Terminal tells whether no more mutations are allowed.
func (s State) Terminal() bool {
	return s == Sent || s == Failed
}
