package ports

import (
	"context"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// OTPResult is returned by the first login step. SessionID ties the OTP
// verification step to the password check that issued the code; the
// notification is handed to the delivery boundary (and echoed for demo use).
type OTPResult struct {
	SessionID    string
	Notification domain.OTPNotification
}

// AuthResult is returned once the OTP is verified.
type AuthResult struct {
	Token    string
	Username string
	Role     string
}

// AuthService orchestrates signup and the two-step login flow.
type AuthService interface {
	Signup(ctx context.Context, username, email, phone, password, confirm string) error
	// RequestOTP verifies the password and, on success, issues a pending
	// 6-digit code bound to a new login session.
	RequestOTP(ctx context.Context, username, password string) (*OTPResult, error)
	// VerifyOTP consumes the pending code and returns a signed token on match.
	VerifyOTP(ctx context.Context, sessionID, code string) (*AuthResult, error)
	Logout(sessionID string)
}

// AttemptLimiter bounds failed password checks per username inside a rolling
// window, so credential guessing cannot run unthrottled.
type AttemptLimiter interface {
	// Blocked reports whether the key has exhausted its failure budget.
	Blocked(ctx context.Context, key string) (bool, error)
	// Hit records one failure and returns the failure count inside the window.
	Hit(ctx context.Context, key string) (int, error)
	// Reset clears the counter after a successful check.
	Reset(ctx context.Context, key string) error
}
