package attendance

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"axiapac.com/attendance/location"
)

// Service is the remote attendance backend.
type Service interface {
	GetStatus(ctx context.Context, attributeID *int64) (*Record, error)
	PunchIn(ctx context.Context, employeeID int64, at time.Time, loc *location.Info) (*Record, error)
	PunchOut(ctx context.Context, employeeID int64, at time.Time, sessionID int64, loc *location.Info) (*Record, error)
	// BreakInOut opens a break when breakSessionID is 0 and closes it otherwise.
	BreakInOut(ctx context.Context, sessionID int64, breakSessionID int64, breakType string, at time.Time) (*Record, error)
}

type Locator interface {
	Locate(ctx context.Context) (*location.Info, error)
}

// Event describes one transition attempt. Err is nil on success.
type Event struct {
	EmployeeID int64
	Action     Action
	At         time.Time
	Location   *location.Info
	Before     UIState
	After      UIState
	Record     *Record
	Err        error
}

type Listener interface {
	OnTransition(ctx context.Context, ev Event)
}

type ListenerFunc func(ctx context.Context, ev Event)

func (f ListenerFunc) OnTransition(ctx context.Context, ev Event) { f(ctx, ev) }

// Snapshot is the persisted form of a session.
type Snapshot struct {
	EmployeeID int64     `json:"employeeId" yaml:"employeeId"`
	Record     *Record   `json:"record" yaml:"record"`
	State      UIState   `json:"state" yaml:"state"`
	SavedAt    time.Time `json:"savedAt" yaml:"savedAt"`
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithBreakType(breakType string) Option {
	return func(s *Session) { s.breakType = breakType }
}

func WithListeners(listeners ...Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, listeners...) }
}

// Session drives the punch state machine for one employee. At most one
// transition runs at a time; the current record and state are only replaced
// after a transition fully succeeds.
type Session struct {
	employeeID int64
	service    Service
	locator    Locator
	now        func() time.Time
	breakType  string
	listeners  []Listener

	mu       sync.Mutex
	inFlight bool
	record   *Record
	state    UIState
}

func NewSession(employeeID int64, service Service, locator Locator, opts ...Option) *Session {
	s := &Session{
		employeeID: employeeID,
		service:    service,
		locator:    locator,
		now:        time.Now,
		breakType:  "general",
		state:      idleState,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) EmployeeID() int64 { return s.employeeID }

func (s *Session) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Record() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecord(s.record)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		EmployeeID: s.employeeID,
		Record:     copyRecord(s.record),
		State:      s.state,
		SavedAt:    s.now(),
	}
}

// Restore loads a saved snapshot. The state is re-derived from the record
// rather than trusted from disk.
func (s *Session) Restore(snap Snapshot) error {
	state, err := Resolve(snap.Record)
	if err != nil {
		return err
	}
	if snap.State != state {
		log.Printf("attendance: employee %d snapshot state %s differs from record, using %s", s.employeeID, snap.State.State, state.State)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return &TransitionInProgressError{EmployeeID: s.employeeID}
	}
	s.record = copyRecord(snap.Record)
	s.state = state
	return nil
}

// Refresh fetches the latest record for the current session.
func (s *Session) Refresh(ctx context.Context) (UIState, error) {
	before, err := s.begin()
	if err != nil {
		return before, err
	}
	defer s.end()

	s.mu.Lock()
	var attributeID *int64
	if s.record != nil && s.record.AttributeID != nil {
		id := *s.record.AttributeID
		attributeID = &id
	}
	s.mu.Unlock()

	rec, err := s.service.GetStatus(ctx, attributeID)
	if err != nil {
		return before, asServiceError("getStatus", err)
	}
	next, err := Resolve(rec)
	if err != nil {
		return before, err
	}
	s.commit(rec, next)
	return next, nil
}

func (s *Session) PunchIn(ctx context.Context) (UIState, error)  { return s.Do(ctx, PunchIn) }
func (s *Session) PunchOut(ctx context.Context) (UIState, error) { return s.Do(ctx, PunchOut) }
func (s *Session) BreakIn(ctx context.Context) (UIState, error)  { return s.Do(ctx, BreakIn) }
func (s *Session) BreakOut(ctx context.Context) (UIState, error) { return s.Do(ctx, BreakOut) }

// Do performs an action: acquire a location, call the service, resolve the
// returned record. On any failure the previous state is kept and returned.
func (s *Session) Do(ctx context.Context, action Action) (UIState, error) {
	before, err := s.begin()
	if err != nil {
		return before, err
	}
	defer s.end()

	ev := Event{EmployeeID: s.employeeID, Action: action, At: s.now(), Before: before, After: before}
	defer func() { s.notify(ctx, ev) }()

	if !before.Allows(action) {
		ev.Err = &ActionNotAllowedError{Action: action, State: before.State}
		return before, ev.Err
	}

	loc, err := s.locator.Locate(ctx)
	if err != nil {
		ev.Err = &LocationRequiredError{Err: err}
		return before, ev.Err
	}
	ev.Location = loc

	rec, err := s.call(ctx, action, ev.At, loc)
	if err != nil {
		ev.Err = err
		return before, err
	}
	ev.Record = rec

	next, err := Resolve(rec)
	if err != nil {
		ev.Err = err
		return before, err
	}
	if want, ok := Next(before.State, action); ok && want != next.State {
		log.Printf("attendance: employee %d %s from %s expected %s, service reports %s",
			s.employeeID, action, before.State, want, next.State)
	}

	s.commit(rec, next)
	ev.After = next
	return next, nil
}

func (s *Session) call(ctx context.Context, action Action, at time.Time, loc *location.Info) (*Record, error) {
	s.mu.Lock()
	sessionID := s.record.SessionID()
	breakID := s.state.ActiveBreakID
	s.mu.Unlock()

	var (
		rec *Record
		err error
	)
	switch action {
	case PunchIn:
		rec, err = s.service.PunchIn(ctx, s.employeeID, at, loc)
	case PunchOut:
		rec, err = s.service.PunchOut(ctx, s.employeeID, at, sessionID, loc)
	case BreakIn:
		rec, err = s.service.BreakInOut(ctx, sessionID, 0, s.breakType, at)
	case BreakOut:
		rec, err = s.service.BreakInOut(ctx, sessionID, breakID, s.breakType, at)
	}
	if err != nil {
		return nil, asServiceError(action.String(), err)
	}
	if rec == nil {
		return nil, &ServiceError{Op: action.String(), Message: "empty attendance record"}
	}
	return rec, nil
}

func (s *Session) begin() (UIState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return s.state, &TransitionInProgressError{EmployeeID: s.employeeID}
	}
	s.inFlight = true
	return s.state, nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Session) commit(rec *Record, state UIState) {
	s.mu.Lock()
	s.record = copyRecord(rec)
	s.state = state
	s.mu.Unlock()
}

func (s *Session) notify(ctx context.Context, ev Event) {
	for _, l := range s.listeners {
		l.OnTransition(ctx, ev)
	}
}

func asServiceError(op string, err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{Op: op, Message: err.Error(), Err: err}
}

func copyRecord(r *Record) *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.AttributeID != nil {
		id := *r.AttributeID
		c.AttributeID = &id
	}
	if r.InTime != nil {
		in := *r.InTime
		c.InTime = &in
	}
	if r.OutTime != nil {
		out := *r.OutTime
		c.OutTime = &out
	}
	return &c
}
