package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// SessionManager holds login sessions in memory. Sessions are runtime state
// only: a restart drops every session back to anonymous, while persisted
// user records are untouched.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*domain.Session)}
}

// Begin creates a fresh session in the otp_pending state and returns its ID.
// Starting a new login attempt for a username supersedes any earlier pending
// session for it.
func (m *SessionManager) Begin(username, otp string, issuedAt time.Time) string {
	id := newSessionID()

	m.mu.Lock()
	defer m.mu.Unlock()

	for sid, s := range m.sessions {
		if s.Username == username && s.State == domain.StateOTPPending {
			delete(m.sessions, sid)
		}
	}
	m.sessions[id] = &domain.Session{
		State:       domain.StateOTPPending,
		Username:    username,
		PendingOTP:  otp,
		OTPIssuedAt: issuedAt,
	}
	return id
}

// With runs fn against the session under the manager's lock, so a
// check-and-mutate sequence (attempt counting, code consumption) is atomic.
// Returns domain.ErrNoSession when the ID is unknown.
func (m *SessionManager) With(id string, fn func(s *domain.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNoSession
	}
	return fn(s)
}

// End drops the session, returning it to anonymous.
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
