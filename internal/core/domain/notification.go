package domain

import "time"

// OTPNotification carries a freshly issued one-time passcode together with
// the destination contact details. Delivery (email/SMS) is an external
// concern; the core only emits the event.
type OTPNotification struct {
	Username string
	Email    string
	Phone    string
	OTP      string
	IssuedAt time.Time
}
