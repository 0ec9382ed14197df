package domain

import (
	"errors"
	"strings"
	"time"
)

type UserStatus string

const (
	UserPending   UserStatus = "pending"
	UserWaitlist  UserStatus = "waitlist"
	UserApproved  UserStatus = "approved"
	UserRejected  UserStatus = "rejected"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserPending, UserWaitlist, UserApproved, UserRejected, UserSuspended:
		return true
	}
	return false
}

// InitialUserStatus maps a company's status to the status a new member
// starts with: approved companies only wait on email verification.
func InitialUserStatus(c CompanyStatus) UserStatus {
	if c == CompanyApproved {
		return UserPending
	}
	return UserWaitlist
}

// ErrInvalidEmail is returned when an address has no local part or domain.
var ErrInvalidEmail = errors.New("domain: invalid email address")

type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string

	FirstName    string
	LastName     string
	Phone        string
	City         string
	Area         string
	Latitude     *float64
	Longitude    *float64
	DisplayName  string
	ShowRealName bool

	NotifyMessages bool
	NotifyListings bool

	CompanyID     *string
	Status        UserStatus
	EmailVerified bool
	Active        bool
	Staff         bool

	MFASecret    *string    // base32 TOTP secret (nullable)
	MFAEnabledAt *time.Time // nil until enrolment is confirmed

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanCreateListing is the posting gate: verified, approved and active.
func (u User) CanCreateListing() bool {
	return u.EmailVerified && u.Status == UserApproved && u.Active
}

// IsVerified mirrors the "verified member" badge.
func (u User) IsVerified() bool {
	return u.EmailVerified && u.Status == UserApproved
}

// MFAEnabled reports whether a confirmed TOTP secret is on file.
func (u User) MFAEnabled() bool {
	return u.MFAEnabledAt != nil && u.MFASecret != nil
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicName is the name shown to other users.
func (u User) PublicName() string {
	if u.ShowRealName {
		if n := u.FullName(); n != "" {
			return n
		}
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	if r := []rune(local); len(r) > 5 {
		local = string(r[:5])
	}
	return "User_" + local
}

// EmailDomain returns the lower-cased part after '@'.
func (u User) EmailDomain() string {
	_, d, _ := SplitEmail(u.Email)
	return d
}

// SplitEmail splits on the last '@'. The domain is lower-cased, the local part
// is kept as typed.
func SplitEmail(email string) (local, domain string, err error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", "", ErrInvalidEmail
	}
	return email[:at], NormalizeDomain(email[at+1:]), nil
}

// NormalizeEmail trims the address and lower-cases its domain.
func NormalizeEmail(email string) (string, error) {
	local, d, err := SplitEmail(email)
	if err != nil {
		return "", err
	}
	return local + "@" + d, nil
}
