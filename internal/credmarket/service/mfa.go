package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this user")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFAStaffOnly      = errors.New("MFA is only available to staff accounts")
)

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// MFAEnrollment is returned once so the operator can add it to an
// authenticator app.
type MFAEnrollment struct {
	Secret  string
	URL     string
	Issuer  string
	Account string
}

// MFAService manages TOTP second factors for staff accounts.
type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps, e.g. "CredMarket"
	Clock  Clock
}

// Enroll generates a secret for userID. MFA is not enforced until Confirm.
func (s *MFAService) Enroll(ctx context.Context, userID string) (MFAEnrollment, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return MFAEnrollment{}, err
	}
	if !u.Staff {
		return MFAEnrollment{}, ErrMFAStaffOnly
	}
	if u.MFAEnabled() {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("generate TOTP key: %w", err)
	}

	if err := s.Store.Users().SetMFASecret(ctx, u.ID, key.Secret(), s.Clock.now()); err != nil {
		return MFAEnrollment{}, fmt.Errorf("store MFA secret: %w", err)
	}

	return MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: u.Email,
	}, nil
}

// Confirm enables MFA once the user proves the authenticator works.
func (s *MFAService) Confirm(ctx context.Context, userID, code string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if u.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}
	if u.MFASecret == nil || *u.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !s.check(code, *u.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return s.Store.Users().EnableMFA(ctx, u.ID, s.Clock.now())
}

// Remove disables MFA after a valid code.
func (s *MFAService) Remove(ctx context.Context, userID, code string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !u.MFAEnabled() {
		return ErrMFANotEnabled
	}
	if !s.check(code, *u.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return s.Store.Users().DisableMFA(ctx, u.ID, s.Clock.now())
}

// Validate is the login check. Users without MFA pass; users with it need a
// current code.
func (s *MFAService) Validate(u domain.User, code string) error {
	if !u.MFAEnabled() {
		return nil
	}
	if code == "" {
		return ErrMFARequired
	}
	if !s.check(code, *u.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

func (s *MFAService) check(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, s.Clock.now(), totpOpts)
	return err == nil && ok
}

func (s *MFAService) load(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
