package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		claims  jwtx.Claims
		wantErr error
	}{
		{
			name: "valid window",
			claims: jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			}},
		},
		{
			name: "expired",
			claims: jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}},
			wantErr: jwtx.ErrExpired,
		},
		{
			name: "not yet valid",
			claims: jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
			wantErr: jwtx.ErrNotYetValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claims.ValidateExpiry(now)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewSessionClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	c := jwtx.NewSessionClaims("driver-id", "driver1", "taxi", time.Hour, now)

	require.Equal(t, "driver-id", c.Subject)
	require.Equal(t, "driver1", c.Username)
	require.Equal(t, "taxi", c.Issuer)
	require.NotEmpty(t, c.ID)
	require.Equal(t, time.Hour, c.TTL(now))
	require.Zero(t, c.TTL(now.Add(2*time.Hour)))
}
