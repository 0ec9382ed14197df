package domain

import "time"

// DefaultOTPValidity is how long an issued code stays usable.
const DefaultOTPValidity = 10 * time.Minute

// OTP is a one-time email verification code. Records are never deleted.
type OTP struct {
	ID        string
	UserID    string
	Code      string // 6 digits
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Expired reports whether the code can no longer be used at now.
func (o OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Valid is true for an unused code before its expiry.
func (o OTP) Valid(now time.Time) bool {
	return !o.Used && !o.Expired(now)
}
