package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

// AccountAttributes are the optional profile fields of a new account.
type AccountAttributes struct {
	LicenseNumber string `yaml:"license_number" json:"license_number"`
	FirstName     string `yaml:"first_name" json:"first_name"`
	LastName      string `yaml:"last_name" json:"last_name"`
}

// Session is an established login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Caller    domain.CallerIdentity
}

// SessionService is the identity store: it creates accounts, checks
// credentials and turns session tokens back into callers.
type SessionService struct {
	Store  store.Store
	Keys   *jwtx.KeyManager
	Issuer string
	TTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTTL
}

// CreateAccount stores a new driver account. Unlike the driver-create form
// it only requires a non-empty password, so operators can bootstrap
// accounts from the command line and fixtures.
func (s *SessionService) CreateAccount(ctx context.Context, username, password string, attrs AccountAttributes) (domain.Driver, error) {
	in := domain.DriverInput{
		Username:      username,
		LicenseNumber: attrs.LicenseNumber,
		FirstName:     attrs.FirstName,
		LastName:      attrs.LastName,
	}
	if err := validateAccount(&in, password); err != nil {
		return domain.Driver{}, err
	}

	l := slogx.FromContext(ctx)
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", "error", err)
		return domain.Driver{}, err
	}

	d := domain.Driver{
		ID:            idx.New().String(),
		Username:      in.Username,
		PasswordHash:  hash,
		LicenseNumber: in.LicenseNumber,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
	}
	if err := s.Store.Drivers().CreateDriver(ctx, d); err != nil {
		err = mapConflict(err)
		logUnexpected(l, "failed to create account", err)
		return domain.Driver{}, err
	}

	l.Info("account created", "driver_id", d.ID, "username", d.Username)
	return s.Store.Drivers().GetDriverByID(ctx, d.ID)
}

func validateAccount(in *domain.DriverInput, password string) error {
	v := validationOf(in.ValidateAccount())
	if password == "" {
		v.Add("password", "This field is required.")
	}
	return v.Err()
}

// VerifyCredential reports whether plaintext is the driver's password.
func (s *SessionService) VerifyCredential(ctx context.Context, d domain.Driver, plaintext string) bool {
	err := cryptox.VerifyPassword(plaintext, d.PasswordHash)
	if err != nil && !errors.Is(err, cryptox.ErrPasswordMismatch) {
		slogx.FromContext(ctx).Warn("stored password hash is unusable", "driver_id", d.ID, "error", err)
	}
	return err == nil
}

// Login checks the credentials and signs a session token for the driver.
func (s *SessionService) Login(ctx context.Context, username, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	d, err := s.Store.Drivers().GetDriverByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.Info("login failed", "username", username, "reason", "unknown user")
		return Session{}, ErrInvalidCredentials
	case err != nil:
		l.Error("failed to look up driver", "error", err)
		return Session{}, err
	}

	if password == "" || !s.VerifyCredential(ctx, d, password) {
		l.Info("login failed", "username", username, "reason", "bad password")
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := jwtx.NewSessionClaims(d.ID, d.Username, s.Issuer, s.ttl(), now)
	token, err := s.Keys.Sign(claims)
	if err != nil {
		l.Error("failed to sign session token", "error", err)
		return Session{}, err
	}

	l.Info("driver logged in", "driver_id", d.ID)
	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Caller:    domain.CallerIdentity{DriverID: d.ID, Username: d.Username},
	}, nil
}

// Authenticate verifies token and re-resolves the account it names. A token
// for a deleted account no longer identifies a caller.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.CallerIdentity, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}

	claims, err := s.Keys.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", "error", err)
		return nil, ErrAuthenticationRequired
	}
	if err := claims.ValidateExpiry(s.now()); err != nil {
		return nil, ErrAuthenticationRequired
	}

	d, err := s.Store.Drivers().GetDriverByID(ctx, claims.Subject)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrAuthenticationRequired
	case err != nil:
		return nil, err
	}

	return &domain.CallerIdentity{DriverID: d.ID, Username: d.Username}, nil
}
