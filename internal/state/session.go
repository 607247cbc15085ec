package state

import (
	"sync"
	"time"
)

// Availability is the process-wide backend availability.
type Availability int

const (
	// Available is the default: every view is usable.
	Available Availability = iota
	// Degraded means the backend reported its database unreachable. The
	// history and DB explorer views stay disabled for the rest of the session.
	Degraded
)

func (a Availability) String() string {
	if a == Degraded {
		return "degraded"
	}
	return "available"
}

// Snapshot is a point-in-time copy of the session availability.
type Snapshot struct {
	Availability Availability
	Reason       string
	Since        time.Time
}

// Degraded reports whether the snapshot is in degraded mode.
func (s Snapshot) Degraded() bool {
	return s.Availability == Degraded
}

// Session holds availability for one run of the client. It is created at
// startup, written at most once, and read by navigation and rendering after.
type Session struct {
	mu       sync.RWMutex
	snapshot Snapshot
	written  bool
}

// NewSession returns a session in the Available state.
func NewSession() *Session {
	return &Session{}
}

// MarkDegraded switches the session to Degraded. Only the first call has an
// effect; it reports whether this call performed the write.
func (s *Session) MarkDegraded(reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.written {
		return false
	}
	s.written = true
	s.snapshot = Snapshot{
		Availability: Degraded,
		Reason:       reason,
		Since:        time.Now(),
	}
	return true
}

// Snapshot returns a copy of the current availability.
func (s *Session) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Degraded is shorthand for Snapshot().Degraded().
func (s *Session) Degraded() bool {
	return s.Snapshot().Degraded()
}
