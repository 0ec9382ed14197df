package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/stretchr/testify/require"
)

func TestOTPIssue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	c := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	u := h.seedUser(t, "b@acme.com", c, domain.UserPending, false)

	for range 20 {
		o, err := h.otps.Issue(ctx, h.store, u.ID)
		require.NoError(t, err)
		require.Len(t, o.Code, 6)

		n, err := strconv.Atoi(o.Code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, otpMin)
		require.LessOrEqual(t, n, otpMax)
		require.Equal(t, t0.Add(10*time.Minute), o.ExpiresAt)
	}
}

func TestOTPSingleUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	c := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	u := h.seedUser(t, "b@acme.com", c, domain.UserPending, false)
	o, err := h.otps.Issue(ctx, h.store, u.ID)
	require.NoError(t, err)

	res, err := h.otps.Verify(ctx, h.store, u.ID, o.Code)
	require.NoError(t, err)
	require.Equal(t, OTPSuccess, res)

	for range 3 {
		res, err = h.otps.Verify(ctx, h.store, u.ID, o.Code)
		require.NoError(t, err)
		require.Equal(t, OTPNotFound, res)
	}

	stored := h.latestCode(t, u.ID)
	require.True(t, stored.Used)
}

func TestOTPSingleUseUnderConcurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	c := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	u := h.seedUser(t, "b@acme.com", c, domain.UserPending, false)
	o, err := h.otps.Issue(ctx, h.store, u.ID)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.otps.Verify(ctx, h.store, u.ID, o.Code)
			if !assertNoError(t, err) {
				return
			}
			if res == OTPSuccess {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
}

func TestOTPExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name    string
		advance time.Duration
		want    OTPResult
	}{
		{"just issued", 0, OTPSuccess},
		{"one second before expiry", 10*time.Minute - time.Second, OTPSuccess},
		{"exactly at expiry", 10 * time.Minute, OTPExpired},
		{"well after expiry", time.Hour, OTPExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			c := h.seedCompany(t, "acme.com", domain.CompanyApproved)
			u := h.seedUser(t, "b@acme.com", c, domain.UserPending, false)

			o, err := h.otps.Issue(ctx, h.store, u.ID)
			require.NoError(t, err)

			h.clock.Advance(tc.advance)
			res, err := h.otps.Verify(ctx, h.store, u.ID, o.Code)
			require.NoError(t, err)
			require.Equal(t, tc.want, res)

			if tc.want == OTPExpired {
				require.False(t, h.latestCode(t, u.ID).Used, "expired codes are left untouched")
			}
		})
	}
}

func TestOTPWrongCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)

	c := h.seedCompany(t, "acme.com", domain.CompanyApproved)
	u := h.seedUser(t, "b@acme.com", c, domain.UserPending, false)
	other := h.seedUser(t, "x@acme.com", c, domain.UserPending, false)

	o, err := h.otps.Issue(ctx, h.store, u.ID)
	require.NoError(t, err)

	wrong := "000000"
	if o.Code == wrong {
		wrong = "111111"
	}
	res, err := h.otps.Verify(ctx, h.store, u.ID, wrong)
	require.NoError(t, err)
	require.Equal(t, OTPNotFound, res)

	// Another user's code is not ours.
	res, err = h.otps.Verify(ctx, h.store, other.ID, o.Code)
	require.NoError(t, err)
	require.Equal(t, OTPNotFound, res)

	require.False(t, h.latestCode(t, u.ID).Used)
}

func TestOTPResultString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "success", OTPSuccess.String())
	require.Equal(t, "expired", OTPExpired.String())
	require.Equal(t, "not_found", OTPNotFound.String())
	require.Equal(t, "unknown", OTPResult(0).String())
}
