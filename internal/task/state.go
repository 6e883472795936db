// Package task defines the entities, binary key codecs, and validation
// rules of the task lifecycle: the Task itself, its (state, id) key, the
// priority-index key, and worker names. None of the types here know
// about the KV store; internal/ops builds on top of them.
package task

import "fmt"

// State is the lifecycle state of a task. Only two states exist: a task
// is either waiting to be picked up, or currently being worked on.
type State byte

const (
	// Queued tasks have a priority-index entry and no assignee.
	Queued State = 'q'
	// Running tasks have an assignee and no priority-index entry.
	Running State = 'r'
)

// String returns the lowercase name used on the wire (HTTP query/JSON).
func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%#02x)", byte(s))
	}
}

// ParseState parses the lowercase wire representation of a State.
func ParseState(s string) (State, error) {
	switch s {
	case "queued":
		return Queued, nil
	case "running":
		return Running, nil
	default:
		return 0, fmt.Errorf("%w: unknown task state %q", ErrDecode, s)
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s == Queued || s == Running
}

// MarshalJSON renders the state using its wire name.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the state from its wire name.
func (s *State) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: invalid state literal %q", ErrDecode, data)
	}
	parsed, err := ParseState(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
