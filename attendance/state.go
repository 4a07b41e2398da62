package attendance

import "strings"

// Record is the attendance snapshot returned by the attendance service.
type Record struct {
	AttributeID *int64  `json:"attributeId" yaml:"attributeId"`
	BreakID     int64   `json:"breakId" yaml:"breakId"`
	InTime      *string `json:"inTime" yaml:"inTime"`
	OutTime     *string `json:"outTime" yaml:"outTime"`
}

func (r *Record) hasIn() bool  { return present(r.InTime) }
func (r *Record) hasOut() bool { return present(r.OutTime) }

// SessionID returns the attendance session id, or 0 when no session was started.
func (r *Record) SessionID() int64 {
	if r == nil || r.AttributeID == nil {
		return 0
	}
	return *r.AttributeID
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

type State int

const (
	Idle State = iota
	Working
	OnBreak
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Working:
		return "working"
	case OnBreak:
		return "on_break"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// MarshalText keeps the state readable in JSON and YAML.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = Idle
	case "working":
		*s = Working
	case "on_break":
		*s = OnBreak
	case "completed":
		*s = Completed
	default:
		return &UnknownStateError{Value: string(b)}
	}
	return nil
}

type Action int

const (
	PunchIn Action = iota
	PunchOut
	BreakIn
	BreakOut
)

func (a Action) String() string {
	switch a {
	case PunchIn:
		return "punch_in"
	case PunchOut:
		return "punch_out"
	case BreakIn:
		return "break_in"
	case BreakOut:
		return "break_out"
	}
	return "unknown"
}

// UIState is the set of actions currently offered to the employee.
type UIState struct {
	State         State `json:"state" yaml:"state"`
	CanPunchIn    bool  `json:"canPunchIn" yaml:"canPunchIn"`
	CanPunchOut   bool  `json:"canPunchOut" yaml:"canPunchOut"`
	CanBreakIn    bool  `json:"canBreakIn" yaml:"canBreakIn"`
	CanBreakOut   bool  `json:"canBreakOut" yaml:"canBreakOut"`
	ActiveBreakID int64 `json:"activeBreakId,omitempty" yaml:"activeBreakId,omitempty"`
}

func (s UIState) Allows(a Action) bool {
	switch a {
	case PunchIn:
		return s.CanPunchIn
	case PunchOut:
		return s.CanPunchOut
	case BreakIn:
		return s.CanBreakIn
	case BreakOut:
		return s.CanBreakOut
	}
	return false
}

var (
	idleState      = UIState{State: Idle, CanPunchIn: true}
	completedState = UIState{State: Completed, CanPunchIn: true}
	workingState   = UIState{State: Working, CanPunchOut: true, CanBreakIn: true}
)

// Resolve derives the available actions from a record. A nil record means no
// session was started today. Rows are matched in order, first match wins.
func Resolve(rec *Record) (UIState, error) {
	if rec == nil {
		return idleState, nil
	}

	in, out := rec.hasIn(), rec.hasOut()
	switch {
	case rec.BreakID > 0 && in && !out:
		return UIState{
			State:         OnBreak,
			CanPunchOut:   true,
			CanBreakOut:   true,
			ActiveBreakID: rec.BreakID,
		}, nil
	case rec.BreakID == 0 && in && !out:
		return workingState, nil
	case rec.BreakID == 0 && in && out:
		return completedState, nil
	case rec.BreakID == 0 && !in && !out:
		return idleState, nil
	}

	return UIState{}, &InconsistentStateError{Record: *rec}
}

// Next reports the state an action is expected to lead to.
func Next(from State, a Action) (State, bool) {
	switch {
	case a == PunchIn && (from == Idle || from == Completed):
		return Working, true
	case a == BreakIn && from == Working:
		return OnBreak, true
	case a == BreakOut && from == OnBreak:
		return Working, true
	case a == PunchOut && (from == Working || from == OnBreak):
		// punching out during a break closes the break with the session
		return Completed, true
	}
	return from, false
}
