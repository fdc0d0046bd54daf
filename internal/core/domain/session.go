package domain

import "time"

// SessionState represents the lifecycle state of a login session.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateOTPPending    SessionState = "otp_pending"
	StateAuthenticated SessionState = "authenticated"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[SessionState][]SessionState{
	StateAnonymous:     {StateOTPPending},
	StateOTPPending:    {StateAuthenticated, StateAnonymous, StateOTPPending},
	StateAuthenticated: {StateAnonymous},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is runtime-held login state. It is never persisted; a process
// restart resets every session to its zero value (anonymous).
type Session struct {
	State       SessionState
	Username    string
	PendingOTP  string // 6-digit code, empty when none pending
	OTPIssuedAt time.Time
	Attempts    int // failed verification attempts against PendingOTP
}

// ConsumeOTP clears the pending code so it cannot be presented twice.
func (s *Session) ConsumeOTP() {
	s.PendingOTP = ""
	s.OTPIssuedAt = time.Time{}
	s.Attempts = 0
}
