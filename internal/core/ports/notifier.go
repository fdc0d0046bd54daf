package ports

import (
	"context"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// Notifier delivers an issued OTP to the user's contact channels. Actual
// email/SMS integration lives outside this core; the default implementation
// only logs the event.
type Notifier interface {
	Notify(ctx context.Context, n domain.OTPNotification) error
}
