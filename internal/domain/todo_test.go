package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoStateNext(t *testing.T) {
	assert.Equal(t, StateGoing, StateNew.Next())
	assert.Equal(t, StateDone, StateGoing.Next())
	assert.Equal(t, StateDone, StateDone.Next())
}

func TestTodoStateJSON(t *testing.T) {
	tests := []struct {
		state TodoState
		wire  string
	}{
		{StateNew, `"New"`},
		{StateGoing, `"Going"`},
		{StateDone, `"Done"`},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			b, err := json.Marshal(tt.state)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(b))

			var got TodoState
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &got))
			assert.Equal(t, tt.state, got)
		})
	}
}

func TestTodoStateRejectsUnknown(t *testing.T) {
	var s TodoState
	assert.Error(t, json.Unmarshal([]byte(`"Blocked"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`2`), &s))

	_, err := json.Marshal(TodoState(7))
	assert.Error(t, err)
	assert.Equal(t, "TodoState(7)", TodoState(7).String())
}
