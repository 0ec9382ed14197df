package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSignupNewDomainGoesToWaitlist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.signup.Signup(ctx, signupInput("a@NewCo.com"))
	require.NoError(t, err)

	require.Equal(t, ResolutionCreated, res.Resolution)
	require.Equal(t, "newco.com", res.Company.Domain)
	require.Equal(t, domain.CompanyWaitlist, res.Company.Status)
	require.Equal(t, "a@newco.com", res.User.Email)
	require.Equal(t, domain.UserWaitlist, res.User.Status)
	require.False(t, res.User.EmailVerified)
	require.True(t, res.Waitlisted)
	require.Equal(t, "Your company (newco.com) is being reviewed. Please verify your email to complete registration.", res.Message)

	require.Equal(t, jwtx.PurposePending, res.PendingToken.Claims.Purpose)
	require.Equal(t, res.User.ID, res.PendingToken.Claims.Subject)
	require.Equal(t, t0.Add(jwtx.DefaultPendingTTL), res.PendingToken.ExpiresAt())

	mails := h.notifier.Messages(notify.KindOTP)
	require.Len(t, mails, 1)
	require.Equal(t, "a@newco.com", mails[0].To)
	require.Contains(t, mails[0].Text, h.latestCode(t, res.User.ID).Code)

	require.Equal(t, []events.Type{events.CompanyCreated, events.UserRegistered}, h.events.Types())
}

func TestSignupApprovedDomainThenVerifyLogsIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	acme := h.seedCompany(t, "acme.com", domain.CompanyApproved)

	res, err := h.signup.Signup(ctx, signupInput("b@acme.com"))
	require.NoError(t, err)
	require.Equal(t, ResolutionFound, res.Resolution)
	require.Equal(t, acme.ID, res.Company.ID)
	require.Equal(t, domain.UserPending, res.User.Status)
	require.False(t, res.Waitlisted)
	require.Equal(t, "OTP sent to b@acme.com. Please verify to complete registration.", res.Message)

	h.clock.Advance(2 * time.Minute)
	code := h.latestCode(t, res.User.ID).Code

	v, err := h.signup.Verify(ctx, res.PendingToken.Token, code)
	require.NoError(t, err)
	require.Equal(t, VerifyLoggedIn, v.Outcome)
	require.Equal(t, LandingHome, v.Landing)
	require.Equal(t, domain.UserApproved, v.User.Status)
	require.True(t, v.User.EmailVerified)
	require.True(t, v.User.CanCreateListing())
	require.Equal(t, "Email verified successfully! Welcome to CredMarket.", v.Message)

	claims, err := h.sessions.Verify(ctx, v.Session.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.Subject)
	require.False(t, claims.Staff)

	stored := h.user(t, res.User.ID)
	require.Equal(t, domain.UserApproved, stored.Status)
	require.Contains(t, h.events.Types(), events.UserApproved)
}

func TestWaitlistedUserVerifiesThenCompanyApproval(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.signup.Signup(ctx, signupInput("a@newco.com"))
	require.NoError(t, err)

	v, err := h.signup.Verify(ctx, res.PendingToken.Token, h.latestCode(t, res.User.ID).Code)
	require.NoError(t, err)
	require.Equal(t, VerifyWaitlisted, v.Outcome)
	require.Empty(t, v.Session.Token, "waitlisted users are not logged in")
	require.Equal(t, "Email verified! Your account is pending company approval.", v.Message)

	u := h.user(t, res.User.ID)
	require.Equal(t, domain.UserWaitlist, u.Status)
	require.True(t, u.EmailVerified)

	view, err := h.signup.Waitlist(ctx, v.WaitlistToken.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, view.User.ID)
	require.NotNil(t, view.Company)
	require.Equal(t, "newco.com", view.Company.Domain)

	// Waitlisted users cannot log in yet.
	lr, err := h.signup.Login(ctx, LoginInput{Email: "a@newco.com", Password: "correct horse"})
	require.ErrorIs(t, err, ErrCompanyUnderReview)
	require.Contains(t, lr.Message, "Your company (newco.com) is being reviewed")

	approval, err := h.companies.Approve(ctx, res.Company.ID, "")
	require.NoError(t, err)
	require.Len(t, approval.Propagated, 1)
	require.Equal(t, u.ID, approval.Propagated[0].ID)

	require.Equal(t, domain.UserApproved, h.user(t, u.ID).Status)
	mails := h.notifier.Messages(notify.KindApproval)
	require.Len(t, mails, 1)
	require.Equal(t, "a@newco.com", mails[0].To)
	require.Contains(t, mails[0].Text, "Newco has been approved")

	lr, err = h.signup.Login(ctx, LoginInput{Email: "a@newco.com", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, LandingHome, lr.Landing)
	require.Equal(t, "Welcome back, Alex!", lr.Message)
}

func TestVerifyWrongCodeChangesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)
	h.seedCompany(t, "acme.com", domain.CompanyApproved)

	res, err := h.signup.Signup(ctx, signupInput("b@acme.com"))
	require.NoError(t, err)

	issued := h.latestCode(t, res.User.ID)
	wrong := "000000"
	if issued.Code == wrong {
		wrong = "111111"
	}

	_, err = h.signup.Verify(ctx, res.PendingToken.Token, wrong)
	require.ErrorIs(t, err, ErrInvalidOTP)

	u := h.user(t, res.User.ID)
	require.Equal(t, domain.UserPending, u.Status)
	require.False(t, u.EmailVerified)
	require.False(t, h.latestCode(t, res.User.ID).Used)

	// The pending token is still good for another attempt.
	v, err := h.signup.Verify(ctx, res.PendingToken.Token, issued.Code)
	require.NoError(t, err)
	require.Equal(t, VerifyLoggedIn, v.Outcome)
}

func TestVerifyExpiredCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)
	h.seedCompany(t, "acme.com", domain.CompanyApproved)

	res, err := h.signup.Signup(ctx, signupInput("b@acme.com"))
	require.NoError(t, err)
	code := h.latestCode(t, res.User.ID).Code

	h.clock.Advance(11 * time.Minute)
	_, err = h.signup.Verify(ctx, res.PendingToken.Token, code)
	require.ErrorIs(t, err, ErrOTPExpired)
	require.False(t, h.user(t, res.User.ID).EmailVerified)

	// A resent code works.
	exp, err := h.signup.ResendOTP(ctx, res.PendingToken.Token)
	require.NoError(t, err)
	require.Equal(t, h.clock.Now().Add(10*time.Minute), exp)
	require.Len(t, h.notifier.Messages(notify.KindOTP), 2)

	_, err = h.signup.Verify(ctx, res.PendingToken.Token, h.latestCode(t, res.User.ID).Code)
	require.NoError(t, err)

	// Verification spends the pending token.
	_, err = h.signup.ResendOTP(ctx, res.PendingToken.Token)
	require.ErrorIs(t, err, ErrNoPendingVerification)
	_, err = h.signup.Verify(ctx, res.PendingToken.Token, "123456")
	require.ErrorIs(t, err, ErrNoPendingVerification)

	// Any other pending token for the account finds it already verified.
	fresh, err := h.sessions.Issue(jwtx.PurposePending, h.user(t, res.User.ID))
	require.NoError(t, err)
	_, err = h.signup.ResendOTP(ctx, fresh.Token)
	require.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)
	h.seedCompany(t, "acme.com", domain.CompanyApproved)

	res, err := h.signup.Signup(ctx, signupInput("b@acme.com"))
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := h.signup.Verify(ctx, "", "123456")
		require.ErrorIs(t, err, ErrNoPendingVerification)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.signup.Verify(ctx, "not.a.jwt", "123456")
		require.ErrorIs(t, err, ErrNoPendingVerification)
	})

	t.Run("session token is not a pending token", func(t *testing.T) {
		tok, err := h.sessions.Issue(jwtx.PurposeSession, res.User)
		require.NoError(t, err)
		_, err = h.signup.Verify(ctx, tok.Token, "123456")
		require.ErrorIs(t, err, ErrNoPendingVerification)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := res.User
		ghost.ID = "01HZZZZZZZZZZZZZZZZZZZZZZZ"
		tok, err := h.sessions.Issue(jwtx.PurposePending, ghost)
		require.NoError(t, err)
		_, err = h.signup.Verify(ctx, tok.Token, "123456")
		require.ErrorIs(t, err, ErrPendingUserGone)
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = h.signup.ResendOTP(ctx, tok.Token)
		require.ErrorIs(t, err, ErrPendingUserGone)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := h.signup.Verify(ctx, res.PendingToken.Token, "  ")
		require.ErrorIs(t, err, ErrInvalidOTP)
	})
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	cases := []struct {
		name  string
		in    func(*SignupInput)
		field string
		msg   string
	}{
		{"missing email", func(in *SignupInput) { in.Email = "" }, "email", "Email is required."},
		{"email without at", func(in *SignupInput) { in.Email = "nobody.example.com" }, "email", "Enter a valid email address."},
		{"email without domain", func(in *SignupInput) { in.Email = "nobody@" }, "email", "Enter a valid email address."},
		{"missing password", func(in *SignupInput) { in.Password = "" }, "password", "Password is required."},
		{"missing city", func(in *SignupInput) { in.City = "   " }, "city", "City is required."},
		{"bad latitude", func(in *SignupInput) { in.Latitude = ptr(123.0) }, "latitude", "Latitude is out of range."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := signupInput("v@valid.com")
			tc.in(&in)

			_, err := h.signup.Signup(ctx, in)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
			require.Equal(t, tc.msg, verr.Message)
		})
	}

	// Nothing was written.
	all, err := h.store.Companies().ListCompanies(ctx, nil, 0)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.signup.Signup(ctx, signupInput("dup@acme.com"))
	require.NoError(t, err)

	_, err = h.signup.Signup(ctx, signupInput("dup@ACME.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignupConcurrentSameEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	const callers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, dupes int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.signup.Signup(ctx, signupInput("race@newco.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateEmail):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, callers-1, dupes)

	all, err := h.store.Companies().ListCompanies(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	acme := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	h.seedUser(t, "ok@acme.com", acme, domain.UserApproved, true)
	unverified := h.seedUser(t, "new@acme.com", acme, domain.UserPending, false)
	h.seedUser(t, "sus@acme.com", acme, domain.UserSuspended, true)
	h.seedUser(t, "rej@acme.com", acme, domain.UserRejected, true)
	inactive := h.seedUser(t, "off@acme.com", acme, domain.UserApproved, true)
	require.NoError(t, h.store.Users().SetUserStatus(ctx, inactive.ID, domain.UserApproved, false, t0))

	t.Run("success", func(t *testing.T) {
		res, err := h.signup.Login(ctx, LoginInput{Email: "ok@ACME.com", Password: "correct horse"})
		require.NoError(t, err)
		require.Equal(t, LandingHome, res.Landing)
		require.Equal(t, []string{"pwd"}, res.Session.Claims.AMR)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := h.signup.Login(ctx, LoginInput{Email: "ok@acme.com", Password: "nope"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		res, err := h.signup.Login(ctx, LoginInput{Email: "ghost@acme.com", Password: "correct horse"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Equal(t, "Invalid email or password.", res.Message)
	})

	t.Run("unverified re-enters verification", func(t *testing.T) {
		before := len(h.notifier.Messages(notify.KindOTP))
		res, err := h.signup.Login(ctx, LoginInput{Email: "new@acme.com", Password: "correct horse"})
		require.ErrorIs(t, err, ErrEmailNotVerified)
		require.Equal(t, jwtx.PurposePending, res.PendingToken.Claims.Purpose)
		require.Empty(t, res.Session.Token)
		require.Len(t, h.notifier.Messages(notify.KindOTP), before+1)

		v, err := h.signup.Verify(ctx, res.PendingToken.Token, h.latestCode(t, unverified.ID).Code)
		require.NoError(t, err)
		require.Equal(t, VerifyLoggedIn, v.Outcome)
	})

	t.Run("suspended", func(t *testing.T) {
		res, err := h.signup.Login(ctx, LoginInput{Email: "sus@acme.com", Password: "correct horse"})
		require.ErrorIs(t, err, ErrAccountSuspended)
		require.Equal(t, "Your account has been suspended.", res.Message)
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := h.signup.Login(ctx, LoginInput{Email: "rej@acme.com", Password: "correct horse"})
		require.ErrorIs(t, err, ErrAccountRejected)
	})

	t.Run("inactive", func(t *testing.T) {
		_, err := h.signup.Login(ctx, LoginInput{Email: "off@acme.com", Password: "correct horse"})
		require.ErrorIs(t, err, ErrAccountSuspended)
	})
}

func TestStaffLoginLandsOnDashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.users.CreateStaff(ctx, "ops@credmarket.test", "operator-password")
	require.NoError(t, err)

	res, err := h.signup.Login(ctx, LoginInput{Email: "ops@credmarket.test", Password: "operator-password"})
	require.NoError(t, err)
	require.Equal(t, LandingAdminDashboard, res.Landing)
	require.Equal(t, "Welcome back, Admin!", res.Message)
	require.True(t, res.Session.Claims.Staff)
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	acme := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	h.seedUser(t, "ok@acme.com", acme, domain.UserApproved, true)

	res, err := h.signup.Login(ctx, LoginInput{Email: "ok@acme.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := h.sessions.Verify(ctx, res.Session.Token)
	require.NoError(t, err)

	require.NoError(t, h.signup.Logout(ctx, claims))
	_, err = h.sessions.Verify(ctx, res.Session.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Equal(t, 1, h.revoked.Len())
}

func TestWaitlistRequiresWaitlistToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.signup.Signup(ctx, signupInput("a@newco.com"))
	require.NoError(t, err)

	_, err = h.signup.Waitlist(ctx, res.PendingToken.Token)
	require.ErrorIs(t, err, ErrNoWaitlistRegistration)

	_, err = h.signup.Waitlist(ctx, "")
	require.ErrorIs(t, err, ErrNoWaitlistRegistration)
}
