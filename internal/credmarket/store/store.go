package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx can hand
// out the same repositories bound to the transaction.
type Store interface {
	Companies() Companies
	Users() Users
	OTPs() OTPs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back otherwise. Prefer this over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
// Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Companies interface {
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// GetCompanyByDomain is an exact, case-sensitive match.
	GetCompanyByDomain(ctx context.Context, domain string) (domain.Company, error)

	GetCompanyByDomainAndStatus(ctx context.Context, domain string, status domain.CompanyStatus) (domain.Company, error)

	// CreateCompany returns ErrAlreadyExists when the domain is taken.
	CreateCompany(ctx context.Context, c domain.Company) error

	// TransitionCompanyStatus moves a company from one status to another only
	// if it is still in from, recording approver and approval time (nil clears
	// them). It reports whether a row changed.
	TransitionCompanyStatus(
		ctx context.Context,
		id string,
		from, to domain.CompanyStatus,
		approvedBy *string,
		approvedAt *time.Time,
		now time.Time,
	) (bool, error)

	// DeleteCompany nulls the company reference of its users (per schema).
	DeleteCompany(ctx context.Context, id string) error

	// ListCompanies returns companies newest first, optionally by status.
	ListCompanies(ctx context.Context, status *domain.CompanyStatus, limit int) ([]domain.Company, error)

	CountCompaniesByStatus(ctx context.Context) (map[domain.CompanyStatus]int, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects a normalised address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// MarkVerifiedAndAdvance sets email_verified and moves pending to approved.
	// Other statuses are left alone.
	MarkVerifiedAndAdvance(ctx context.Context, id string, now time.Time) error

	// ApproveVerifiedWaitlisted flips every waitlisted, verified user of the
	// company to approved and returns them.
	ApproveVerifiedWaitlisted(ctx context.Context, companyID string, now time.Time) ([]domain.User, error)

	SetUserStatus(ctx context.Context, id string, status domain.UserStatus, active bool, now time.Time) error

	// UpdateProfile writes the user-editable fields.
	UpdateProfile(ctx context.Context, u domain.User) error

	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error)

	CountUsersByStatus(ctx context.Context) (map[domain.UserStatus]int, error)

	// TopCities groups users by city, most populous first.
	TopCities(ctx context.Context, limit int) ([]domain.CityCount, error)

	// CountUnverifiedBefore counts users who registered before t and never
	// verified their email.
	CountUnverifiedBefore(ctx context.Context, t time.Time) (int, error)

	// SetMFASecret stores a pending secret and clears any enabled timestamp.
	SetMFASecret(ctx context.Context, id string, secret string, now time.Time) error
	EnableMFA(ctx context.Context, id string, at time.Time) error
	DisableMFA(ctx context.Context, id string, now time.Time) error
}

type OTPs interface {
	CreateOTP(ctx context.Context, o domain.OTP) error

	// GetLatestUnusedOTP returns the most recently created unused record for
	// (user, code), expired or not.
	GetLatestUnusedOTP(ctx context.Context, userID, code string) (domain.OTP, error)

	// MarkOTPUsed consumes the record if it is still unused and reports
	// whether this call consumed it.
	MarkOTPUsed(ctx context.Context, id string) (bool, error)

	ListOTPsForUser(ctx context.Context, userID string) ([]domain.OTP, error)

	// CountExpiredUnused counts unused records whose expiry is before now.
	CountExpiredUnused(ctx context.Context, now time.Time) (int, error)
}
