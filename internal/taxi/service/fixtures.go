package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

// Fixture is a batch of records to seed a database with. Cars refer to
// manufacturers by name and to drivers by username.
type Fixture struct {
	Manufacturers []ManufacturerFixture `yaml:"manufacturers"`
	Drivers       []DriverFixture       `yaml:"drivers"`
	Cars          []CarFixture          `yaml:"cars"`
}

type ManufacturerFixture struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
}

type DriverFixture struct {
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	AccountAttributes `yaml:",inline"`
}

type CarFixture struct {
	Model        string   `yaml:"model"`
	Manufacturer string   `yaml:"manufacturer"`
	Drivers      []string `yaml:"drivers"`
}

// FixtureSummary counts what a load inserted.
type FixtureSummary struct {
	Manufacturers int
	Drivers       int
	Cars          int
}

// FixtureService seeds the store from the command line. It bypasses the
// access gate, so it is never reachable over HTTP.
type FixtureService struct {
	Store store.Store
}

// Load validates every record and inserts the whole fixture in one
// transaction. Nothing is written when any record is rejected.
func (s *FixtureService) Load(ctx context.Context, f Fixture) (FixtureSummary, error) {
	l := slogx.FromContext(ctx)

	// Passwords are hashed before the transaction opens.
	accounts := make([]domain.Driver, len(f.Drivers))
	for i, d := range f.Drivers {
		in := domain.DriverInput{
			Username:      d.Username,
			LicenseNumber: d.LicenseNumber,
			FirstName:     d.FirstName,
			LastName:      d.LastName,
		}
		if err := validateAccount(&in, d.Password); err != nil {
			return FixtureSummary{}, fmt.Errorf("drivers[%d]: %w", i, err)
		}

		hash, err := cryptox.HashPassword(d.Password)
		if err != nil {
			return FixtureSummary{}, fmt.Errorf("drivers[%d]: hash password: %w", i, err)
		}
		accounts[i] = domain.Driver{
			ID:            idx.New().String(),
			Username:      in.Username,
			PasswordHash:  hash,
			LicenseNumber: in.LicenseNumber,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
		}
	}

	var sum FixtureSummary
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		manufacturers := make(map[string]string, len(f.Manufacturers))
		for i, m := range f.Manufacturers {
			in := domain.ManufacturerInput{Name: m.Name, Country: m.Country}
			if err := in.Validate(); err != nil {
				return fmt.Errorf("manufacturers[%d]: %w", i, err)
			}
			rec := domain.Manufacturer{ID: idx.New().String(), Name: in.Name, Country: in.Country}
			if err := tx.Manufacturers().CreateManufacturer(ctx, rec); err != nil {
				return fmt.Errorf("manufacturers[%d]: %w", i, err)
			}
			manufacturers[rec.Name] = rec.ID
			sum.Manufacturers++
		}

		drivers := make(map[string]string, len(accounts))
		for i, rec := range accounts {
			if err := tx.Drivers().CreateDriver(ctx, rec); err != nil {
				return fmt.Errorf("drivers[%d]: %w", i, mapConflict(err))
			}
			drivers[rec.Username] = rec.ID
			sum.Drivers++
		}

		for i, c := range f.Cars {
			mfrID, ok := manufacturers[c.Manufacturer]
			if !ok && c.Manufacturer != "" {
				return fmt.Errorf("cars[%d]: %w", i, domain.NewFieldError("manufacturer", invalidChoice))
			}
			in := domain.CarInput{Model: c.Model, ManufacturerID: mfrID}
			for _, username := range c.Drivers {
				id, err := resolveDriver(ctx, tx, drivers, username)
				if err != nil {
					return fmt.Errorf("cars[%d]: %w", i, err)
				}
				in.DriverIDs = append(in.DriverIDs, id)
			}
			if err := in.Validate(); err != nil {
				return fmt.Errorf("cars[%d]: %w", i, err)
			}

			car := domain.Car{ID: idx.New().String(), Model: in.Model, ManufacturerID: in.ManufacturerID}
			if err := tx.Cars().CreateCar(ctx, car); err != nil {
				return fmt.Errorf("cars[%d]: %w", i, err)
			}
			if err := syncDrivers(ctx, tx, car.ID, nil, in.DriverIDs); err != nil {
				return fmt.Errorf("cars[%d]: %w", i, err)
			}
			sum.Cars++
		}
		return nil
	})
	if err != nil {
		l.Error("fixture load failed", "error", err)
		return FixtureSummary{}, err
	}

	l.Info("fixture loaded",
		"manufacturers", sum.Manufacturers,
		"drivers", sum.Drivers,
		"cars", sum.Cars,
	)
	return sum, nil
}

// resolveDriver finds username among the fixture's drivers first, then in
// the store.
func resolveDriver(ctx context.Context, tx store.Tx, loaded map[string]string, username string) (string, error) {
	if id, ok := loaded[username]; ok {
		return id, nil
	}
	d, err := tx.Drivers().GetDriverByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("driver %q: %w", username, mapNotFound(err))
	}
	return d.ID, nil
}
