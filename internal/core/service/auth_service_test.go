package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.History != nil {
		clone.History = append(make([]domain.PredictionRecord, 0, len(u.History)), u.History...)
	}
	return &clone
}

func (r *stubUserRepo) LoadAll(_ context.Context) (map[string]*domain.User, error) {
	all := make(map[string]*domain.User, len(r.users))
	for name, u := range r.users {
		all[name] = cloneUser(u)
	}
	return all, nil
}

func (r *stubUserRepo) SaveAll(_ context.Context, users map[string]*domain.User) error {
	r.users = users
	return nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Get(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AppendHistory(_ context.Context, username string, rec domain.PredictionRecord) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.History = append(u.History, rec)
	return nil
}

type stubLimiter struct {
	blocked bool
	hits    int
	resets  int
}

func (l *stubLimiter) Blocked(_ context.Context, _ string) (bool, error) { return l.blocked, nil }
func (l *stubLimiter) Hit(_ context.Context, _ string) (int, error) {
	l.hits++
	return l.hits, nil
}
func (l *stubLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}

type stubNotifier struct {
	events []domain.OTPNotification
}

func (n *stubNotifier) Notify(_ context.Context, event domain.OTPNotification) error {
	n.events = append(n.events, event)
	return nil
}

func newTestAuthService(repo *stubUserRepo, cfg AuthConfig) (*AuthService, *stubLimiter, *stubNotifier) {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "secret"
	}
	limiter := &stubLimiter{}
	notifier := &stubNotifier{}
	svc := NewAuthService(repo, NewSessionManager(), limiter, notifier, cfg, zerolog.Nop())
	return svc, limiter, notifier
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	if err := svc.Signup(context.Background(), "alice", "alice@example.com", "999", "pw1", "pw1"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	user := repo.users["alice"]
	if user == nil {
		t.Fatalf("user not stored")
	}
	if user.PasswordHash != HashPassword("pw1") {
		t.Fatalf("unexpected password hash: %s", user.PasswordHash)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.History == nil || len(user.History) != 0 {
		t.Fatalf("expected empty history, got %v", user.History)
	}
}

func TestAuthService_Signup_AdminRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{AdminUsername: "admin"})

	if err := svc.Signup(context.Background(), "admin", "", "", "pw", "pw"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if repo.users["admin"].Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", repo.users["admin"].Role)
	}
}

func TestAuthService_Signup_PasswordMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	if err := svc.Signup(context.Background(), "bob", "", "", "pw1", "pw2"); err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be stored")
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	if err := svc.Signup(context.Background(), "bob", "bob@example.com", "111", "pw", "pw"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := svc.Signup(context.Background(), "bob", "other@example.com", "222", "pw2", "pw2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// the existing record must be left unmodified
	if repo.users["bob"].Email != "bob@example.com" {
		t.Fatalf("existing record was modified: %+v", repo.users["bob"])
	}
	if repo.users["bob"].PasswordHash != HashPassword("pw") {
		t.Fatalf("existing password hash was modified")
	}
}

func TestAuthService_RequestOTP_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, limiter, notifier := newTestAuthService(repo, AuthConfig{})

	_ = svc.Signup(context.Background(), "carol", "carol@example.com", "777", "s3cret", "s3cret")

	result, err := svc.RequestOTP(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if result.SessionID == "" {
		t.Fatalf("expected session id")
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(result.Notification.OTP) {
		t.Fatalf("expected 6-digit otp, got %q", result.Notification.OTP)
	}
	if result.Notification.Email != "carol@example.com" || result.Notification.Phone != "777" {
		t.Fatalf("unexpected notification contacts: %+v", result.Notification)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected 1 notification event, got %d", len(notifier.events))
	}
	if limiter.resets != 1 {
		t.Fatalf("expected attempt counter reset on success")
	}
}

func TestAuthService_RequestOTP_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, limiter, notifier := newTestAuthService(repo, AuthConfig{})

	_ = svc.Signup(context.Background(), "dave", "", "", "goodpass", "goodpass")

	if _, err := svc.RequestOTP(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.hits != 1 {
		t.Fatalf("expected failure to be recorded, hits=%d", limiter.hits)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("no otp must be generated on failure")
	}
}

func TestAuthService_RequestOTP_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	if _, err := svc.RequestOTP(context.Background(), "ghost", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_RequestOTP_Blocked(t *testing.T) {
	repo := newStubUserRepo()
	svc, limiter, _ := newTestAuthService(repo, AuthConfig{})
	limiter.blocked = true

	_ = svc.Signup(context.Background(), "eve", "", "", "pw", "pw")

	if _, err := svc.RequestOTP(context.Background(), "eve", "pw"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	_ = svc.Signup(context.Background(), "frank", "", "", "pw", "pw")
	otpResult, err := svc.RequestOTP(context.Background(), "frank", "pw")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	auth, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP)
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if auth.Username != "frank" || auth.Role != domain.RoleClient {
		t.Fatalf("unexpected auth result: %+v", auth)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(auth.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "frank" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}

	// the code is consumed: presenting it again must fail
	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP on reuse, got %v", err)
	}
}

func TestAuthService_VerifyOTP_WrongCodeThenCorrect(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	_ = svc.Signup(context.Background(), "gina", "", "", "pw", "pw")
	otpResult, _ := svc.RequestOTP(context.Background(), "gina", "pw")

	wrong := "000000"
	if wrong == otpResult.Notification.OTP {
		wrong = "000001"
	}

	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, wrong); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}

	// a mismatch keeps the session pending, so a retry with the right code succeeds
	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP); err != nil {
		t.Fatalf("retry with correct code failed: %v", err)
	}
}

func TestAuthService_VerifyOTP_TooManyAttempts(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{MaxOTPAttempts: 3})

	_ = svc.Signup(context.Background(), "hank", "", "", "pw", "pw")
	otpResult, _ := svc.RequestOTP(context.Background(), "hank", "pw")

	wrong := "000000"
	if wrong == otpResult.Notification.OTP {
		wrong = "000001"
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, wrong); err != domain.ErrInvalidOTP {
			t.Fatalf("attempt %d: expected ErrInvalidOTP, got %v", i+1, err)
		}
	}
	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, wrong); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// the pending code is revoked: even the correct one fails now
	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP after revocation, got %v", err)
	}
}

func TestAuthService_VerifyOTP_Expired(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{OTPTTL: time.Nanosecond})

	_ = svc.Signup(context.Background(), "iris", "", "", "pw", "pw")
	otpResult, _ := svc.RequestOTP(context.Background(), "iris", "pw")

	time.Sleep(2 * time.Millisecond)

	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP); err != domain.ErrOTPExpired {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

func TestAuthService_VerifyOTP_UnknownSession(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	if _, err := svc.VerifyOTP(context.Background(), "no-such-session", "123456"); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	svc, _, _ := newTestAuthService(repo, AuthConfig{})

	_ = svc.Signup(context.Background(), "judy", "", "", "pw", "pw")
	otpResult, _ := svc.RequestOTP(context.Background(), "judy", "pw")

	svc.Logout(otpResult.SessionID)

	if _, err := svc.VerifyOTP(context.Background(), otpResult.SessionID, otpResult.Notification.OTP); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}
