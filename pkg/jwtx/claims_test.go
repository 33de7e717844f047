package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "auth-service"}}

	require.NoError(t, c.ValidateIssuer("auth-service"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("chat-service"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"invites", "chat"}}}

	require.NoError(t, c.ValidateAudience([]string{"invites"}))
	require.NoError(t, c.ValidateAudience([]string{"other", "chat"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"media"}), jwtx.ErrAudience)
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}

	t.Run("within window", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiryAt(now, 0))
	})

	t.Run("expired", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiryAt(now.Add(2*time.Minute), 0), jwtx.ErrExpired)
	})

	t.Run("expired but inside leeway", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiryAt(now.Add(90*time.Second), time.Minute))
	})

	t.Run("not yet valid", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiryAt(now.Add(-2*time.Minute), 0), jwtx.ErrNotYetValid)
	})
}

func TestDisplayName(t *testing.T) {
	c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "acct-1"}}
	require.Equal(t, "acct-1", c.DisplayName())

	c.Username = "grace"
	require.Equal(t, "grace", c.DisplayName())

	c.PreferredName = "Grace Hopper"
	require.Equal(t, "Grace Hopper", c.DisplayName())
}
