package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/sqlite"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func seedCompany(t *testing.T, s store.Store, d string, status domain.CompanyStatus) domain.Company {
	t.Helper()
	c := domain.Company{
		ID:        idx.New().String(),
		Name:      domain.DisplayNameForDomain(d),
		Domain:    d,
		Status:    status,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, s.Companies().CreateCompany(context.Background(), c))
	return c
}

func seedUser(t *testing.T, s store.Store, email string, companyID *string, status domain.UserStatus, verified bool) domain.User {
	t.Helper()
	u := domain.User{
		ID:             idx.New().String(),
		Email:          email,
		PasswordHash:   "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		City:           "Sydney",
		CompanyID:      companyID,
		Status:         status,
		EmailVerified:  verified,
		Active:         true,
		NotifyMessages: true,
		NotifyListings: true,
		CreatedAt:      t0,
		UpdatedAt:      t0,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestCompanies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	c := seedCompany(t, s, "newco.com", domain.CompanyWaitlist)

	t.Run("lookup", func(t *testing.T) {
		got, err := s.Companies().GetCompanyByDomain(ctx, "newco.com")
		require.NoError(t, err)
		require.Equal(t, c.ID, got.ID)
		require.Equal(t, "Newco", got.Name)
		require.True(t, got.CreatedAt.Equal(t0))

		_, err = s.Companies().GetCompanyByDomain(ctx, "NEWCO.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Companies().GetCompanyByDomainAndStatus(ctx, "newco.com", domain.CompanyApproved)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate domain", func(t *testing.T) {
		dup := c
		dup.ID = idx.New().String()
		err := s.Companies().CreateCompany(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("conditional transition", func(t *testing.T) {
		approver := "op"
		at := t0.Add(time.Hour)

		ok, err := s.Companies().TransitionCompanyStatus(ctx, c.ID,
			domain.CompanyWaitlist, domain.CompanyApproved, nil, &at, at)
		require.NoError(t, err)
		require.True(t, ok)

		// Second flip from waitlist finds nothing to change.
		ok, err = s.Companies().TransitionCompanyStatus(ctx, c.ID,
			domain.CompanyWaitlist, domain.CompanyApproved, &approver, &at, at)
		require.NoError(t, err)
		require.False(t, ok)

		got, err := s.Companies().GetCompanyByID(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, domain.CompanyApproved, got.Status)
		require.NotNil(t, got.ApprovedAt)
		require.True(t, got.ApprovedAt.Equal(at))
	})

	t.Run("list and count", func(t *testing.T) {
		seedCompany(t, s, "other.com", domain.CompanyWaitlist)

		all, err := s.Companies().ListCompanies(ctx, nil, 0)
		require.NoError(t, err)
		require.Len(t, all, 2)

		wl := domain.CompanyWaitlist
		waiting, err := s.Companies().ListCompanies(ctx, &wl, 10)
		require.NoError(t, err)
		require.Len(t, waiting, 1)
		require.Equal(t, "other.com", waiting[0].Domain)

		counts, err := s.Companies().CountCompaniesByStatus(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, counts[domain.CompanyApproved])
		require.Equal(t, 1, counts[domain.CompanyWaitlist])
	})
}

func TestDeleteCompanyNullsUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	c := seedCompany(t, s, "gone.com", domain.CompanyApproved)
	u := seedUser(t, s, "a@gone.com", &c.ID, domain.UserApproved, true)

	require.NoError(t, s.Companies().DeleteCompany(ctx, c.ID))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.CompanyID)
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	c := seedCompany(t, s, "acme.com", domain.CompanyApproved)

	t.Run("duplicate email", func(t *testing.T) {
		seedUser(t, s, "dup@acme.com", &c.ID, domain.UserPending, false)
		u := domain.User{
			ID: idx.New().String(), Email: "dup@acme.com", PasswordHash: "x",
			Status: domain.UserPending, CreatedAt: t0, UpdatedAt: t0,
		}
		require.ErrorIs(t, s.Users().CreateUser(ctx, u), store.ErrAlreadyExists)
	})

	t.Run("verify advances pending only", func(t *testing.T) {
		pending := seedUser(t, s, "p@acme.com", &c.ID, domain.UserPending, false)
		waiting := seedUser(t, s, "w@acme.com", &c.ID, domain.UserWaitlist, false)

		require.NoError(t, s.Users().MarkVerifiedAndAdvance(ctx, pending.ID, t0))
		require.NoError(t, s.Users().MarkVerifiedAndAdvance(ctx, waiting.ID, t0))

		got, err := s.Users().GetUserByID(ctx, pending.ID)
		require.NoError(t, err)
		require.True(t, got.EmailVerified)
		require.Equal(t, domain.UserApproved, got.Status)

		got, err = s.Users().GetUserByID(ctx, waiting.ID)
		require.NoError(t, err)
		require.True(t, got.EmailVerified)
		require.Equal(t, domain.UserWaitlist, got.Status)

		require.ErrorIs(t, s.Users().MarkVerifiedAndAdvance(ctx, "missing", t0), store.ErrNotFound)
	})

	t.Run("profile round trip", func(t *testing.T) {
		u := seedUser(t, s, "prof@acme.com", &c.ID, domain.UserApproved, true)
		lat, lng := -33.87, 151.21
		u.DisplayName = "prof"
		u.Latitude, u.Longitude = &lat, &lng
		u.NotifyListings = false
		u.UpdatedAt = t0.Add(time.Minute)
		require.NoError(t, s.Users().UpdateProfile(ctx, u))

		got, err := s.Users().GetUserByEmail(ctx, "prof@acme.com")
		require.NoError(t, err)
		require.Equal(t, "prof", got.DisplayName)
		require.InDelta(t, lat, *got.Latitude, 1e-9)
		require.False(t, got.NotifyListings)
		require.True(t, got.NotifyMessages)
	})

	t.Run("mfa", func(t *testing.T) {
		u := seedUser(t, s, "mfa@acme.com", nil, domain.UserApproved, true)

		require.ErrorIs(t, s.Users().EnableMFA(ctx, u.ID, t0), store.ErrNotFound)
		require.NoError(t, s.Users().SetMFASecret(ctx, u.ID, "JBSWY3DPEHPK3PXP", t0))
		require.NoError(t, s.Users().EnableMFA(ctx, u.ID, t0))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.MFAEnabled())

		require.NoError(t, s.Users().DisableMFA(ctx, u.ID, t0))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, got.MFAEnabled())
		require.Nil(t, got.MFASecret)
	})
}

func TestApproveVerifiedWaitlisted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	c := seedCompany(t, s, "newco.com", domain.CompanyWaitlist)
	other := seedCompany(t, s, "other.com", domain.CompanyWaitlist)

	var verified []string
	for _, e := range []string{"a@newco.com", "b@newco.com", "c@newco.com"} {
		verified = append(verified, seedUser(t, s, e, &c.ID, domain.UserWaitlist, true).ID)
	}
	unverified := seedUser(t, s, "d@newco.com", &c.ID, domain.UserWaitlist, false)
	suspended := seedUser(t, s, "e@newco.com", &c.ID, domain.UserSuspended, true)
	elsewhere := seedUser(t, s, "f@other.com", &other.ID, domain.UserWaitlist, true)

	var approved []domain.User
	err := s.WithTx(ctx, func(tx store.Tx) error {
		var err error
		approved, err = tx.Users().ApproveVerifiedWaitlisted(ctx, c.ID, t0)
		return err
	})
	require.NoError(t, err)
	require.Len(t, approved, 3)

	for _, id := range verified {
		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.UserApproved, u.Status)
	}
	for id, want := range map[string]domain.UserStatus{
		unverified.ID: domain.UserWaitlist,
		suspended.ID:  domain.UserSuspended,
		elsewhere.ID:  domain.UserWaitlist,
	} {
		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, u.Status)
	}

	again, err := s.Users().ApproveVerifiedWaitlisted(ctx, c.ID, t0)
	require.NoError(t, err)
	require.Empty(t, again)
}

func TestOTPs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "otp@acme.com", nil, domain.UserPending, false)

	older := domain.OTP{ID: idx.New().String(), UserID: u.ID, Code: "123456", CreatedAt: t0, ExpiresAt: t0.Add(10 * time.Minute)}
	newer := domain.OTP{ID: idx.New().String(), UserID: u.ID, Code: "123456", CreatedAt: t0.Add(time.Minute), ExpiresAt: t0.Add(11 * time.Minute)}
	require.NoError(t, s.OTPs().CreateOTP(ctx, older))
	require.NoError(t, s.OTPs().CreateOTP(ctx, newer))

	got, err := s.OTPs().GetLatestUnusedOTP(ctx, u.ID, "123456")
	require.NoError(t, err)
	require.Equal(t, newer.ID, got.ID)

	ok, err := s.OTPs().MarkOTPUsed(ctx, newer.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.OTPs().MarkOTPUsed(ctx, newer.ID)
	require.NoError(t, err)
	require.False(t, ok)

	got, err = s.OTPs().GetLatestUnusedOTP(ctx, u.ID, "123456")
	require.NoError(t, err)
	require.Equal(t, older.ID, got.ID)

	_, err = s.OTPs().GetLatestUnusedOTP(ctx, u.ID, "000000")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.OTPs().ListOTPsForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	n, err := s.OTPs().CountExpiredUnused(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		seedCompany(t, tx, "rollback.com", domain.CompanyWaitlist)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Companies().GetCompanyByDomain(ctx, "rollback.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, sql.ErrTxDone)
}
