package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

const (
	defaultTokenTTL       = 24 * time.Hour
	defaultOTPTTL         = 5 * time.Minute
	defaultMaxOTPAttempts = 5
)

// AuthConfig bundles the tunables of the login flow.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	MaxOTPAttempts int
	// AdminUsername is granted the admin role at signup.
	AdminUsername string
}

// AuthService implements signup and the two-step (password + OTP) login flow.
type AuthService struct {
	repo     ports.UserRepository
	sessions *SessionManager
	limiter  ports.AttemptLimiter
	notifier ports.Notifier
	cfg      AuthConfig
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions *SessionManager, limiter ports.AttemptLimiter, notifier ports.Notifier, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = defaultOTPTTL
	}
	if cfg.MaxOTPAttempts <= 0 {
		cfg.MaxOTPAttempts = defaultMaxOTPAttempts
	}
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		limiter:  limiter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Signup creates a user record with an empty history. The existing record is
// left untouched when the username is already taken.
func (s *AuthService) Signup(ctx context.Context, username, email, phone, password, confirm string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	if password != confirm {
		return domain.ErrPasswordMismatch
	}

	role := domain.RoleClient
	if s.cfg.AdminUsername != "" && username == s.cfg.AdminUsername {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: HashPassword(password),
		Role:         role,
		History:      []domain.PredictionRecord{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Str("role", role).Msg("account created")
	return nil
}

// RequestOTP is login step one: on a successful password check it issues a
// 6-digit code bound to a new session and emits a notification event.
func (s *AuthService) RequestOTP(ctx context.Context, username, password string) (*ports.OTPResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.limiter.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("attempt limiter check failed, continuing")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	ok, err := s.verifyPassword(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		if n, hitErr := s.limiter.Hit(ctx, username); hitErr != nil {
			s.logger.Warn().Err(hitErr).Str("username", username).Msg("failed to record login failure")
		} else {
			s.logger.Info().Str("username", username).Int("failures", n).Msg("invalid credentials")
		}
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset attempt counter")
	}

	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	now := time.Now().UTC()
	sessionID := s.sessions.Begin(username, otp, now)

	notification := domain.OTPNotification{
		Username: username,
		Email:    user.Email,
		Phone:    user.Phone,
		OTP:      otp,
		IssuedAt: now,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("otp notification failed")
	}

	s.logger.Info().Str("username", username).Msg("otp issued")
	return &ports.OTPResult{SessionID: sessionID, Notification: notification}, nil
}

// VerifyOTP is login step two. The pending code is single-use: it is
// consumed on success and revoked on expiry or after too many bad attempts.
func (s *AuthService) VerifyOTP(ctx context.Context, sessionID, code string) (*ports.AuthResult, error) {
	var username string
	err := s.sessions.With(sessionID, func(sess *domain.Session) error {
		if sess.State != domain.StateOTPPending || sess.PendingOTP == "" {
			return domain.ErrInvalidOTP
		}
		if time.Since(sess.OTPIssuedAt) > s.cfg.OTPTTL {
			sess.ConsumeOTP()
			sess.State = domain.StateAnonymous
			return domain.ErrOTPExpired
		}
		if code != sess.PendingOTP {
			sess.Attempts++
			if sess.Attempts >= s.cfg.MaxOTPAttempts {
				sess.ConsumeOTP()
				sess.State = domain.StateAnonymous
				return domain.ErrTooManyAttempts
			}
			return domain.ErrInvalidOTP
		}
		username = sess.Username
		sess.ConsumeOTP()
		sess.State = domain.StateAuthenticated
		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("login successful")
	return &ports.AuthResult{Token: token, Username: username, Role: user.EffectiveRole()}, nil
}

// Logout drops the session. Persisted history is not affected.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.End(sessionID)
}

func (s *AuthService) verifyPassword(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.Get(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.PasswordHash == HashPassword(password), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.EffectiveRole(),
		"exp":      time.Now().Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword returns the lowercase hex SHA-256 digest of the password.
// The digest format is part of the user-store document contract.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// generateOTP returns a uniformly random 6-digit code (100000-999999).
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
