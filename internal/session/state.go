package session

import "fmt"

// State is the worksheet controller's state. It is the single source of
// truth; every flag shown to a user is derived from it.
type State int

const (
	StateIdle       State = iota // nothing generated yet
	StateChecking                // consulting the entitlement policy
	StateGenerating              // waiting on the question generator
	StateReady                   // holding a worksheet
	StateBlocked                 // free allowance used up; upgrade offered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	for st := StateIdle; st <= StateBlocked; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", b)
}
