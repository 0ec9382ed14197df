package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrNoPendingVerification  = errors.New("no pending verification found")
	ErrNoWaitlistRegistration = errors.New("no waitlist registration found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidOTP             = errors.New("invalid OTP code")
	ErrOTPExpired             = errors.New("OTP has expired")
	ErrAlreadyVerified        = errors.New("email already verified")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrCompanyUnderReview = errors.New("company under review")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrAccountRejected    = errors.New("account rejected")
	ErrMFARequired        = errors.New("second factor required")

	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company already exists")

	ErrInvalidToken = errors.New("invalid or expired token")
)

// ErrPendingUserGone is returned when a pending token names an account that
// has since been deleted. It matches ErrUserNotFound.
var ErrPendingUserGone = fmt.Errorf("%w: pending verification is stale", ErrUserNotFound)

// ValidationError names the offending input field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
