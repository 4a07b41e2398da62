package punch

import (
	"errors"
	"log"
	"sync"

	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/store"
)

type SnapshotStore interface {
	Load(employeeID int64) (attendance.Snapshot, error)
	Save(snap attendance.Snapshot) error
}

type SessionFactory func(employeeID int64) *attendance.Session

// Registry owns one session per employee. Sessions are restored from the
// snapshot store the first time they are used.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*attendance.Session
	restored map[int64]bool
	saving   map[int64]*sync.Mutex
	store    SnapshotStore
	factory  SessionFactory
}

func NewRegistry(store SnapshotStore, factory SessionFactory) *Registry {
	return &Registry{
		sessions: make(map[int64]*attendance.Session),
		restored: make(map[int64]bool),
		saving:   make(map[int64]*sync.Mutex),
		store:    store,
		factory:  factory,
	}
}

// Get returns the employee's session and whether it was restored from a
// snapshot (false means nothing is known yet and the caller should refresh).
func (r *Registry) Get(employeeID int64) (*attendance.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[employeeID]; ok {
		return s, r.restored[employeeID]
	}

	s := r.factory(employeeID)
	r.sessions[employeeID] = s
	r.saving[employeeID] = &sync.Mutex{}

	snap, err := r.store.Load(employeeID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Printf("registry: failed to load snapshot for employee %d: %v", employeeID, err)
	default:
		if err := s.Restore(snap); err != nil {
			log.Printf("registry: discarding snapshot for employee %d: %v", employeeID, err)
		} else {
			r.restored[employeeID] = true
		}
	}
	return s, r.restored[employeeID]
}

// Save persists the session; a failure is logged since the remote state has
// already changed by the time this is called. Saves for one employee are
// serialized and each takes its snapshot under the lock, so the last write
// always carries the latest state.
func (r *Registry) Save(s *attendance.Session) {
	lock := r.saveLock(s.EmployeeID())
	lock.Lock()
	defer lock.Unlock()

	if err := r.store.Save(s.Snapshot()); err != nil {
		log.Printf("registry: failed to save snapshot for employee %d: %v", s.EmployeeID(), err)
		return
	}
	r.mu.Lock()
	r.restored[s.EmployeeID()] = true
	r.mu.Unlock()
}

func (r *Registry) saveLock(employeeID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.saving[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		r.saving[employeeID] = lock
	}
	return lock
}
