package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsQueuedWithFullRemaining(t *testing.T) {
	tk := New(2*time.Second, 10)

	assert.Equal(t, Queued, tk.State)
	assert.Equal(t, tk.Duration, tk.Remaining)
	assert.Equal(t, tk.CreatedAt, tk.UpdatedAt)
	require.NoError(t, tk.Validate())
}

func TestTask_ValueRoundTrip(t *testing.T) {
	tk := New(30*time.Second, 42)
	tk.Remaining = 12 * time.Second

	raw, err := tk.MarshalValue()
	require.NoError(t, err)

	decoded, err := DecodeValue(tk.Key(), raw)
	require.NoError(t, err)

	assert.Equal(t, tk.ID, decoded.ID)
	assert.Equal(t, tk.State, decoded.State)
	assert.Equal(t, tk.Duration, decoded.Duration)
	assert.Equal(t, tk.Remaining, decoded.Remaining)
	assert.WithinDuration(t, tk.CreatedAt, decoded.CreatedAt, time.Millisecond)
	assert.WithinDuration(t, tk.UpdatedAt, decoded.UpdatedAt, time.Millisecond)
	assert.Equal(t, tk.Priority, decoded.Priority)
	assert.Equal(t, tk.Assignee, decoded.Assignee)
}

func TestTask_ValueRoundTrip_RunningWithAssignee(t *testing.T) {
	tk := New(5*time.Second, 0)
	tk.State = Running
	tk.Assignee = "node-a"

	raw, err := tk.MarshalValue()
	require.NoError(t, err)

	decoded, err := DecodeValue(tk.Key(), raw)
	require.NoError(t, err)
	assert.Equal(t, WorkerName("node-a"), decoded.Assignee)
	require.NoError(t, decoded.Validate())
}

func TestDecodeValue_RejectsInvariantViolation(t *testing.T) {
	// A running row with no assignee round-trips through msgpack cleanly
	// (the field is just absent) but breaks invariant 3 of spec.md §3;
	// DecodeValue must catch it rather than hand back a Task that looks
	// fine until something calls Validate explicitly.
	running := New(time.Second, 0)
	running.State = Running
	running.Assignee = "node-a"

	raw, err := running.MarshalValue()
	require.NoError(t, err)

	key := Key{State: Running, ID: running.ID}

	corrupted := running
	corrupted.Assignee = ""
	rawCorrupted, err := corrupted.MarshalValue()
	require.NoError(t, err)

	_, err = DecodeValue(key, rawCorrupted)
	assert.ErrorIs(t, err, ErrDecode)

	// Sanity check: the uncorrupted encoding of the same task decodes fine.
	decoded, err := DecodeValue(key, raw)
	require.NoError(t, err)
	assert.Equal(t, running.Assignee, decoded.Assignee)
}

func TestTask_Validate_RemainingOutOfRange(t *testing.T) {
	tk := New(time.Second, 0)
	tk.Remaining = 2 * time.Second
	assert.ErrorIs(t, tk.Validate(), ErrDecode)

	tk.Remaining = -time.Second
	assert.ErrorIs(t, tk.Validate(), ErrDecode)
}

func TestTask_Validate_StateAssigneeInvariant(t *testing.T) {
	running := New(time.Second, 0)
	running.State = Running
	assert.Error(t, running.Validate(), "running task without assignee must fail")

	queued := New(time.Second, 0)
	queued.Assignee = "node-a"
	assert.Error(t, queued.Validate(), "queued task with assignee must fail")
}

func TestTask_DurationZero_ValidAtCreation(t *testing.T) {
	tk := New(0, 5)
	require.NoError(t, tk.Validate())
	assert.Equal(t, time.Duration(0), tk.Remaining)
}

func TestWorkerName_Validate(t *testing.T) {
	tests := []struct {
		name    string
		wn      WorkerName
		wantErr bool
	}{
		{name: "valid simple", wn: "node-1"},
		{name: "valid max length", wn: WorkerName(make32Chars())},
		{name: "empty", wn: "", wantErr: true},
		{name: "too long", wn: WorkerName(make32Chars() + "x"), wantErr: true},
		{name: "uppercase", wn: "Node-1", wantErr: true},
		{name: "underscore", wn: "node_1", wantErr: true},
		{name: "space", wn: "node 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wn.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorkerName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func make32Chars() string {
	b := make([]byte, 32)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestState_ParseAndString(t *testing.T) {
	s, err := ParseState("queued")
	require.NoError(t, err)
	assert.Equal(t, Queued, s)
	assert.Equal(t, "queued", s.String())

	s, err = ParseState("running")
	require.NoError(t, err)
	assert.Equal(t, Running, s)

	_, err = ParseState("bogus")
	assert.ErrorIs(t, err, ErrDecode)
}
