package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
)

const (
	otpMin = 100000
	otpMax = 999999
)

type OTPResult int

const (
	OTPSuccess OTPResult = iota + 1
	OTPExpired
	OTPNotFound
)

func (r OTPResult) String() string {
	switch r {
	case OTPSuccess:
		return "success"
	case OTPExpired:
		return "expired"
	case OTPNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// OTPService issues and checks email verification codes. Records are kept
// after use as an audit trail.
type OTPService struct {
	Store    store.Store
	Clock    Clock
	Validity time.Duration
}

func (s *OTPService) validity() time.Duration {
	if s.Validity <= 0 {
		return domain.DefaultOTPValidity
	}
	return s.Validity
}

// Issue records a fresh six digit code for userID. Earlier codes stay valid
// until they expire or are used.
func (s *OTPService) Issue(ctx context.Context, st store.Store, userID string) (domain.OTP, error) {
	n, err := cryptox.RandomInt(otpMin, otpMax)
	if err != nil {
		return domain.OTP{}, fmt.Errorf("draw otp: %w", err)
	}

	now := s.Clock.now()
	o := domain.OTP{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Code:      strconv.FormatInt(n, 10),
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity()),
	}
	if err := st.OTPs().CreateOTP(ctx, o); err != nil {
		return domain.OTP{}, fmt.Errorf("store otp: %w", err)
	}
	return o, nil
}

// Verify checks code against the newest unused record for the user. An
// expired record is reported and left untouched. Consumption is conditional
// on the record still being unused, so of two concurrent calls with the same
// code only one can succeed; the loser sees OTPNotFound.
func (s *OTPService) Verify(ctx context.Context, st store.Store, userID, code string) (OTPResult, error) {
	o, err := st.OTPs().GetLatestUnusedOTP(ctx, userID, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return OTPNotFound, nil
		}
		return 0, fmt.Errorf("lookup otp: %w", err)
	}

	if o.Expired(s.Clock.now()) {
		return OTPExpired, nil
	}

	consumed, err := st.OTPs().MarkOTPUsed(ctx, o.ID)
	if err != nil {
		return 0, fmt.Errorf("consume otp: %w", err)
	}
	if !consumed {
		return OTPNotFound, nil
	}
	return OTPSuccess, nil
}
