package commands

import (
	"strings"
	"sync"
	"time"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/errs"
)

// DefaultScanSessionTTL bounds how long a scan may wait for a decision.
const DefaultScanSessionTTL = 5 * time.Minute

var (
	ErrClientIDIsRequired = errs.NewValueIsRequiredError("client id")
	ErrScanInProgress     = errs.NewConflictError("scan order", "a scan from this client is still waiting for a decision")
	ErrNoPendingScan      = errs.NewConflictError("resolve scan", "no scan is waiting for this decision")
)

// ScanSession is one scan-driven decision of a client.
type ScanSession struct {
	ID        kernel.UUID
	ClientID  string
	OrderID   kernel.OrderID
	Decision  services.Decision
	StartedAt time.Time
}

// Awaiting reports whether the session holds a resolved decision that
// needs user input.
func (s ScanSession) Awaiting() bool {
	return s.Decision.NeedsUserInput()
}

// ScanSessions keeps at most one open session per client. A session opens
// when a photo is submitted, stays open while the user decides, and closes
// once the decision is persisted, cancelled or expired.
type ScanSessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]ScanSession
}

func NewScanSessions(ttl time.Duration, now func() time.Time) *ScanSessions {
	if ttl <= 0 {
		ttl = DefaultScanSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ScanSessions{ttl: ttl, now: now, sessions: make(map[string]ScanSession)}
}

// Begin opens an in-flight session, failing with ErrScanInProgress while a
// previous one is still open.
func (s *ScanSessions) Begin(clientID string) (ScanSession, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ScanSession{}, ErrClientIDIsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.sessions[clientID]; ok && !s.expired(existing, now) {
		return ScanSession{}, ErrScanInProgress
	}

	session := ScanSession{ID: kernel.NewUUID(), ClientID: clientID, StartedAt: now}
	s.sessions[clientID] = session
	return session, nil
}

// Await records on session the resolved decision the client must answer.
// It fails with ErrNoPendingScan once the session was closed or replaced.
func (s *ScanSessions) Await(session ScanSession, orderID kernel.OrderID, decision services.Decision) (ScanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[session.ClientID]
	if !ok || !current.ID.IsEqual(session.ID) {
		return ScanSession{}, ErrNoPendingScan
	}
	current.OrderID = orderID
	current.Decision = decision
	current.StartedAt = s.now()
	s.sessions[session.ClientID] = current
	return current, nil
}

// Pending returns the open session of clientID if it awaits decision.
func (s *ScanSessions) Pending(clientID string, decision services.Decision) (ScanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[strings.TrimSpace(clientID)]
	if !ok || s.expired(session, s.now()) || session.Decision != decision {
		return ScanSession{}, ErrNoPendingScan
	}
	return session, nil
}

// Finish closes session. A newer session of the same client stays open.
func (s *ScanSessions) Finish(session ScanSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.sessions[session.ClientID]; ok && current.ID.IsEqual(session.ID) {
		delete(s.sessions, session.ClientID)
	}
}

// Cancel closes the session of clientID and reports whether one was open.
func (s *ScanSessions) Cancel(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	clientID = strings.TrimSpace(clientID)
	_, ok := s.sessions[clientID]
	delete(s.sessions, clientID)
	return ok
}

// PurgeExpired drops sessions older than the TTL and returns how many.
func (s *ScanSessions) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}

// Open returns the number of open sessions.
func (s *ScanSessions) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *ScanSessions) expired(session ScanSession, now time.Time) bool {
	return now.Sub(session.StartedAt) > s.ttl
}
