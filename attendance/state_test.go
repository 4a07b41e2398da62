package attendance

import (
	"errors"
	"testing"

	"axiapac.com/attendance/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		record   *Record
		expected UIState
	}{
		{
			name:     "No record",
			record:   nil,
			expected: UIState{State: Idle, CanPunchIn: true},
		},
		{
			name:     "Empty record",
			record:   &Record{},
			expected: UIState{State: Idle, CanPunchIn: true},
		},
		{
			name:     "Blank timestamps count as absent",
			record:   &Record{InTime: utils.Ptr(" "), OutTime: utils.Ptr("")},
			expected: UIState{State: Idle, CanPunchIn: true},
		},
		{
			name:     "Punched in",
			record:   &Record{AttributeID: utils.Ptr(int64(7)), InTime: utils.Ptr("09:00")},
			expected: UIState{State: Working, CanPunchOut: true, CanBreakIn: true},
		},
		{
			name:     "On break",
			record:   &Record{AttributeID: utils.Ptr(int64(7)), BreakID: 55, InTime: utils.Ptr("09:00")},
			expected: UIState{State: OnBreak, CanPunchOut: true, CanBreakOut: true, ActiveBreakID: 55},
		},
		{
			name:     "Punched out",
			record:   &Record{AttributeID: utils.Ptr(int64(7)), InTime: utils.Ptr("09:00"), OutTime: utils.Ptr("18:00")},
			expected: UIState{State: Completed, CanPunchIn: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)

			again, err := Resolve(tt.record)
			require.NoError(t, err)
			assert.Equal(t, res, again)

			assert.False(t, res.CanPunchIn && res.CanPunchOut)
			assert.False(t, res.CanBreakIn && res.CanBreakOut)
		})
	}
}

func TestResolveInconsistent(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{name: "Break open after punch out", record: Record{BreakID: 3, InTime: utils.Ptr("09:00"), OutTime: utils.Ptr("18:00")}},
		{name: "Break without punch in", record: Record{BreakID: 3}},
		{name: "Out without in", record: Record{OutTime: utils.Ptr("18:00")}},
		{name: "Negative break id", record: Record{BreakID: -1, InTime: utils.Ptr("09:00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&tt.record)
			var ise *InconsistentStateError
			require.True(t, errors.As(err, &ise))
			assert.Equal(t, tt.record, ise.Record)
		})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		from   State
		action Action
		to     State
		ok     bool
	}{
		{Idle, PunchIn, Working, true},
		{Working, BreakIn, OnBreak, true},
		{OnBreak, BreakOut, Working, true},
		{Working, PunchOut, Completed, true},
		{OnBreak, PunchOut, Completed, true},
		{Completed, PunchIn, Working, true},
		{Idle, PunchOut, Idle, false},
		{Completed, BreakIn, Completed, false},
		{Working, PunchIn, Working, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.action.String(), func(t *testing.T) {
			to, ok := Next(tt.from, tt.action)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.to, to)
		})
	}
}

// Every state offered by Resolve must agree with the transition table.
func TestAllowsMatchesNext(t *testing.T) {
	states := []UIState{idleState, workingState, completedState, {State: OnBreak, CanPunchOut: true, CanBreakOut: true, ActiveBreakID: 1}}
	for _, s := range states {
		for _, a := range []Action{PunchIn, PunchOut, BreakIn, BreakOut} {
			_, ok := Next(s.State, a)
			assert.Equal(t, s.Allows(a), ok, "%s/%s", s.State, a)
		}
	}
}

func TestStateText(t *testing.T) {
	for _, s := range []State{Idle, Working, OnBreak, Completed} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var back State
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}

	var s State
	assert.Error(t, s.UnmarshalText([]byte("lunch")))
}
