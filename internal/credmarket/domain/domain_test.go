package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/stretchr/testify/require"
)

func TestCanCreateListing(t *testing.T) {
	t.Parallel()

	statuses := []domain.UserStatus{
		domain.UserPending, domain.UserWaitlist, domain.UserApproved,
		domain.UserRejected, domain.UserSuspended,
	}

	for _, status := range statuses {
		for _, verified := range []bool{false, true} {
			for _, active := range []bool{false, true} {
				u := domain.User{Status: status, EmailVerified: verified, Active: active}
				want := verified && status == domain.UserApproved && active

				t.Run(fmt.Sprintf("%s/verified=%t/active=%t", status, verified, active), func(t *testing.T) {
					require.Equal(t, want, u.CanCreateListing())
				})
			}
		}
	}
}

func TestCompanyTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to domain.CompanyStatus
		noop     bool
		err      error
	}{
		{domain.CompanyWaitlist, domain.CompanyApproved, false, nil},
		{domain.CompanyWaitlist, domain.CompanyRejected, false, nil},
		{domain.CompanyApproved, domain.CompanyWaitlist, false, nil},
		{domain.CompanyApproved, domain.CompanyApproved, true, nil},
		{domain.CompanyWaitlist, domain.CompanyWaitlist, true, nil},
		{domain.CompanyApproved, domain.CompanyRejected, false, domain.ErrInvalidTransition},
		{domain.CompanyRejected, domain.CompanyApproved, false, domain.ErrInvalidTransition},
		{domain.CompanyRejected, domain.CompanyWaitlist, false, domain.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			noop, err := tc.from.CheckTransition(tc.to)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.noop, noop)
		})
	}
}

func TestDisplayNameForDomain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Newco", domain.DisplayNameForDomain("newco.com"))
	require.Equal(t, "Acme", domain.DisplayNameForDomain("ACME.co.uk"))
	require.Equal(t, "Localhost", domain.DisplayNameForDomain("localhost"))
}

func TestInitialUserStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.UserPending, domain.InitialUserStatus(domain.CompanyApproved))
	require.Equal(t, domain.UserWaitlist, domain.InitialUserStatus(domain.CompanyWaitlist))
	require.Equal(t, domain.UserWaitlist, domain.InitialUserStatus(domain.CompanyRejected))
}

func TestPublicName(t *testing.T) {
	t.Parallel()

	u := domain.User{Email: "jonathan@acme.com", FirstName: "Jon", LastName: "Smith"}
	require.Equal(t, "User_jonat", u.PublicName())

	u.DisplayName = "jsmith"
	require.Equal(t, "jsmith", u.PublicName())

	u.ShowRealName = true
	require.Equal(t, "Jon Smith", u.PublicName())

	short := domain.User{Email: "al@acme.com"}
	require.Equal(t, "User_al", short.PublicName())
}

func TestSplitEmail(t *testing.T) {
	t.Parallel()

	local, d, err := domain.SplitEmail(" Alice@NewCo.COM ")
	require.NoError(t, err)
	require.Equal(t, "Alice", local)
	require.Equal(t, "newco.com", d)

	for _, bad := range []string{"", "alice", "@acme.com", "alice@"} {
		_, _, err := domain.SplitEmail(bad)
		require.ErrorIs(t, err, domain.ErrInvalidEmail, bad)
	}

	norm, err := domain.NormalizeEmail("Bob@Acme.Com")
	require.NoError(t, err)
	require.Equal(t, "Bob@acme.com", norm)
	require.Equal(t, "acme.com", domain.User{Email: norm}.EmailDomain())
}

func TestOTPValidity(t *testing.T) {
	t.Parallel()

	now := time.Now()
	o := domain.OTP{ExpiresAt: now.Add(domain.DefaultOTPValidity)}

	require.True(t, o.Valid(now))
	require.False(t, o.Valid(now.Add(domain.DefaultOTPValidity)))
	require.True(t, o.Expired(now.Add(domain.DefaultOTPValidity)))

	o.Used = true
	require.False(t, o.Valid(now))
}
