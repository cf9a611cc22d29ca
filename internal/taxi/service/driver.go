package service

import (
	"context"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

// DriverService manages driver accounts. Drivers are also the accounts that
// sign in, so creation hashes the password here.
type DriverService struct {
	Store store.Store
}

// List returns drivers whose username contains opts.Search.
func (s *DriverService) List(ctx context.Context, caller *domain.CallerIdentity, opts store.ListOptions) (store.Page[domain.Driver], error) {
	if err := requireCaller(caller); err != nil {
		return store.Page[domain.Driver]{}, err
	}
	return s.Store.Drivers().ListDrivers(ctx, opts)
}

// Get returns the driver with the cars they are assigned to.
func (s *DriverService) Get(ctx context.Context, caller *domain.CallerIdentity, id string) (domain.Driver, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Driver{}, err
	}
	return loadDriver(ctx, s.Store, id)
}

func loadDriver(ctx context.Context, st store.Store, id string) (domain.Driver, error) {
	d, err := st.Drivers().GetDriverByID(ctx, id)
	if err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	d.Cars, err = st.Cars().ListCarsByDriver(ctx, id)
	if err != nil {
		return domain.Driver{}, err
	}
	return d, nil
}

func (s *DriverService) Create(ctx context.Context, caller *domain.CallerIdentity, in domain.DriverInput) (domain.Driver, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Driver{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Driver{}, err
	}

	l := slogx.FromContext(ctx)
	hash, err := cryptox.HashPassword(in.Password1)
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
		logUnexpected(l, "failed to create driver", err)
		return domain.Driver{}, err
	}

	l.Info("driver created", "driver_id", d.ID, "username", d.Username)
	return loadDriver(ctx, s.Store, d.ID)
}

// UpdateLicense replaces the driver's license number. No other field changes.
func (s *DriverService) UpdateLicense(ctx context.Context, caller *domain.CallerIdentity, id string, in domain.LicenseInput) (domain.Driver, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Driver{}, err
	}
	if _, err := s.Store.Drivers().GetDriverByID(ctx, id); err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	if err := in.Validate(); err != nil {
		return domain.Driver{}, err
	}

	l := slogx.FromContext(ctx)
	if err := s.Store.Drivers().UpdateDriverLicense(ctx, id, in.LicenseNumber); err != nil {
		err = mapNotFound(mapConflict(err))
		logUnexpected(l, "failed to update driver license", err, "driver_id", id)
		return domain.Driver{}, err
	}

	l.Info("driver license updated", "driver_id", id)
	return loadDriver(ctx, s.Store, id)
}

// UpdateProfile replaces the driver's first and last name.
func (s *DriverService) UpdateProfile(ctx context.Context, caller *domain.CallerIdentity, id string, in domain.ProfileInput) (domain.Driver, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Driver{}, err
	}
	if _, err := s.Store.Drivers().GetDriverByID(ctx, id); err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	if err := in.Validate(); err != nil {
		return domain.Driver{}, err
	}

	l := slogx.FromContext(ctx)
	if err := s.Store.Drivers().UpdateDriverProfile(ctx, id, in.FirstName, in.LastName); err != nil {
		err = mapNotFound(err)
		logUnexpected(l, "failed to update driver profile", err, "driver_id", id)
		return domain.Driver{}, err
	}

	l.Info("driver profile updated", "driver_id", id)
	return loadDriver(ctx, s.Store, id)
}

// Delete removes the driver and their car assignments. Cars stay.
func (s *DriverService) Delete(ctx context.Context, caller *domain.CallerIdentity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	l := slogx.FromContext(ctx)
	if err := s.Store.Drivers().DeleteDriver(ctx, id); err != nil {
		err = mapNotFound(err)
		logUnexpected(l, "failed to delete driver", err, "driver_id", id)
		return err
	}

	l.Info("driver deleted", "driver_id", id, "self", id == caller.DriverID)
	return nil
}
