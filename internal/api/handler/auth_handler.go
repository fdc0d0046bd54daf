package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/api/metrics"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"confirm" validate:"required"`
}

type otpRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type notificationResponse struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type otpResponse struct {
	SessionID    string               `json:"session_id"`
	Notification notificationResponse `json:"notification"`
}

type verifyRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Code      string `json:"code" validate:"required"`
}

type verifyResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type logoutRequest struct {
	SessionID string `json:"session_id"`
}

// Signup creates a new account with an empty prediction history.
//
// @Summary      Create account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Phone, req.Password, req.Confirm); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, map[string]string{"message": "account created"})
}

// RequestOTP is login step one: password check plus passcode issuance.
//
// @Summary      Request a one-time passcode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Credentials"
// @Success      200   {object}  otpResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/otp [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.RequestOTP(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	// The OTP is echoed back because delivery is an external concern: the
	// boundary emits the code and the destination contact info.
	return c.JSON(http.StatusOK, otpResponse{
		SessionID: result.SessionID,
		Notification: notificationResponse{
			Email: result.Notification.Email,
			Phone: result.Notification.Phone,
			OTP:   result.Notification.OTP,
		},
	})
}

// VerifyOTP is login step two: it consumes the pending passcode and returns
// a session token.
//
// @Summary      Verify the one-time passcode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Session and code"
// @Success      200   {object}  verifyResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/verify [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.VerifyOTP(c.Request().Context(), req.SessionID, req.Code)
	if err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("failure").Inc()
		metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, verifyResponse{
		Token:    result.Token,
		Username: result.Username,
		Role:     result.Role,
	})
}

// Logout drops the login session. Persisted history is untouched.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.authService.Logout(req.SessionID)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidOTP):
		return "invalid_otp"
	case errors.Is(err, domain.ErrOTPExpired):
		return "otp_expired"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "too_many_attempts"
	case errors.Is(err, domain.ErrNoSession):
		return "no_session"
	default:
		return "other"
	}
}
