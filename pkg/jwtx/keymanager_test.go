package jwtx_test

import (
	"crypto/ed25519"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewEphemeralKeyManager(t *testing.T) {
	tests := []struct {
		name    string
		numKeys int
		want    int
	}{
		{"default", 0, 3},
		{"single", 1, 1},
		{"capped", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Issuer:  "taxi",
				NumKeys: tt.numKeys,
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, km.NumKeys())
			require.True(t, km.IsReady())

			kids := km.KeySet.Kids()
			require.Len(t, kids, tt.want)
			for _, kid := range kids {
				require.True(t, strings.HasPrefix(kid, "taxi-"), kid)
			}
		})
	}
}

func TestNewEphemeralKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "taxi", NumKeys: 3, KeyPrefix: "test"})
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("driver-id", "driver1", "taxi", time.Hour, time.Now())

	// Every key in the rotation must verify.
	for range 20 {
		token, err := km.Sign(claims)
		require.NoError(t, err)

		parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwtx.Claims{})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(parsed.Header["kid"].(string), "test-"))

		got, err := km.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "driver-id", got.Subject)
		require.Equal(t, "driver1", got.Username)
	}
}

func TestVerifyRejects(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "taxi", NumKeys: 1, Now: clock})
	require.NoError(t, err)

	other, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "taxi", NumKeys: 1})
	require.NoError(t, err)

	sign := func(t *testing.T, claims jwtx.Claims) string {
		t.Helper()
		token, err := km.Sign(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("expired", func(t *testing.T) {
		token := sign(t, jwtx.NewSessionClaims("id", "u", "taxi", time.Minute, now.Add(-time.Hour)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		token := sign(t, jwtx.NewSessionClaims("id", "u", "taxi", time.Hour, now.Add(time.Minute)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("id", "u", "taxi", time.Hour, now)
		claims.ExpiresAt = nil
		_, err := km.Verifier.Verify(sign(t, claims))
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := sign(t, jwtx.NewSessionClaims("id", "u", "elsewhere", time.Hour, now))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("foreign key", func(t *testing.T) {
		token, err := other.Sign(jwtx.NewSessionClaims("id", "u", "taxi", time.Hour, now))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		hs := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.NewSessionClaims("id", "u", "taxi", time.Hour, now))
		hs.Header["kid"] = km.KeySet.Kids()[0]
		token, err := hs.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not.a.token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeySet(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())
	require.NoError(t, ks.Add("kid-1", pub))
	require.True(t, ks.IsReady())
	require.Equal(t, []string{"kid-1"}, ks.Kids())

	got, err := ks.Get("kid-1")
	require.NoError(t, err)
	require.Equal(t, pub, got)

	_, err = ks.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	require.Error(t, ks.Add("kid-1", pub), "duplicate kid")
	require.Error(t, ks.Add("", pub), "empty kid")
	require.Error(t, ks.Add("short", ed25519.PublicKey{1, 2, 3}), "bad key size")
}
