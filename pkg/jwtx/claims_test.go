package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := jwtx.NewClaims(jwtx.PurposePending, "user-1", "credmarket", 30*time.Minute, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "credmarket", c.Issuer)
	require.Equal(t, jwtx.PurposePending, c.Purpose)
	require.Equal(t, now.Add(30*time.Minute), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)

	other := jwtx.NewClaims(jwtx.PurposePending, "user-1", "credmarket", time.Minute, now)
	require.NotEqual(t, c.ID, other.ID)
}

func TestValidatePurpose(t *testing.T) {
	c := &jwtx.Claims{Purpose: jwtx.PurposeSession}

	require.NoError(t, c.ValidatePurpose(jwtx.PurposeSession))
	require.ErrorIs(t, c.ValidatePurpose(jwtx.PurposePending), jwtx.ErrPurpose)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "credmarket"}}

	require.NoError(t, c.ValidateIssuer("credmarket"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
}

func TestRemaining(t *testing.T) {
	now := time.Now()
	c := jwtx.NewClaims(jwtx.PurposeSession, "u", "i", time.Hour, now)

	require.Equal(t, time.Hour, c.Remaining(now))
	require.Zero(t, c.Remaining(now.Add(2*time.Hour)))
	require.Zero(t, (&jwtx.Claims{}).Remaining(now))
}
