package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// TodoState is the lifecycle stage of a Todo.
type TodoState int

const (
	StateNew TodoState = iota
	StateGoing
	StateDone
)

var stateNames = map[TodoState]string{
	StateNew:   "New",
	StateGoing: "Going",
	StateDone:  "Done",
}

// String returns the wire name of the state.
func (s TodoState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TodoState(%d)", int(s))
}

// Next returns the following state in the New -> Going -> Done progression.
// Done is terminal.
func (s TodoState) Next() TodoState {
	switch s {
	case StateNew:
		return StateGoing
	default:
		return StateDone
	}
}

// ParseTodoState maps a wire name back to a state.
func ParseTodoState(name string) (TodoState, error) {
	for state, n := range stateNames {
		if n == name {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown todo state %q", name)
}

func (s TodoState) MarshalJSON() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid todo state %d", int(s))
	}
	return json.Marshal(name)
}

func (s *TodoState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("todo state must be a string: %w", err)
	}
	state, err := ParseTodoState(name)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

type Todo struct {
	ID    uuid.UUID
	Text  string
	State TodoState
}
