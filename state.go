package statebox

// State is the settlement state of a Box, a Future, or a Result.
type State uint32

const (
	// Pending means the underlying computation has not settled yet.
	Pending State = iota

	// Resolved means the computation finished and produced a value.
	Resolved

	// Rejected means the computation finished with an error.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		// only user-created State values may result in reaching this
		return "<UnknownState>"
	}
}
