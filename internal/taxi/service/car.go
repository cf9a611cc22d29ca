package service

import (
	"context"
	"errors"
	"slices"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

// CarService manages cars and the driver set each car owns.
type CarService struct {
	Store store.Store
}

// List returns cars whose model contains opts.Search.
func (s *CarService) List(ctx context.Context, caller *domain.CallerIdentity, opts store.ListOptions) (store.Page[domain.Car], error) {
	if err := requireCaller(caller); err != nil {
		return store.Page[domain.Car]{}, err
	}
	return s.Store.Cars().ListCars(ctx, opts)
}

// Get returns the car with its manufacturer and drivers resolved.
func (s *CarService) Get(ctx context.Context, caller *domain.CallerIdentity, id string) (domain.Car, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Car{}, err
	}
	return loadCar(ctx, s.Store, id)
}

func loadCar(ctx context.Context, st store.Store, id string) (domain.Car, error) {
	c, err := st.Cars().GetCarByID(ctx, id)
	if err != nil {
		return domain.Car{}, mapNotFound(err)
	}
	c.Drivers, err = st.Drivers().ListDriversByCar(ctx, id)
	if err != nil {
		return domain.Car{}, err
	}
	return c, nil
}

// Create inserts the car and its driver set in one transaction.
func (s *CarService) Create(ctx context.Context, caller *domain.CallerIdentity, in domain.CarInput) (domain.Car, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Car{}, err
	}

	l := slogx.FromContext(ctx)
	car := domain.Car{ID: idx.New().String()}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkCarInput(ctx, tx, &in); err != nil {
			return err
		}

		car.Model, car.ManufacturerID = in.Model, in.ManufacturerID
		if err := tx.Cars().CreateCar(ctx, car); err != nil {
			return err
		}
		return syncDrivers(ctx, tx, car.ID, nil, in.DriverIDs)
	})
	if err != nil {
		logUnexpected(l, "failed to create car", err)
		return domain.Car{}, err
	}

	l.Info("car created", "car_id", car.ID, "model", car.Model, "drivers", len(in.DriverIDs))
	return loadCar(ctx, s.Store, car.ID)
}

// Update rewrites model and manufacturer and replaces the driver set.
func (s *CarService) Update(ctx context.Context, caller *domain.CallerIdentity, id string, in domain.CarInput) (domain.Car, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Car{}, err
	}

	l := slogx.FromContext(ctx)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Cars().GetCarByID(ctx, id)
		if err != nil {
			return mapNotFound(err)
		}
		if err := checkCarInput(ctx, tx, &in); err != nil {
			return err
		}

		car := domain.Car{ID: id, Model: in.Model, ManufacturerID: in.ManufacturerID}
		if err := tx.Cars().UpdateCar(ctx, car); err != nil {
			return err
		}
		return syncDrivers(ctx, tx, id, current.DriverIDs, in.DriverIDs)
	})
	if err != nil {
		logUnexpected(l, "failed to update car", err, "car_id", id)
		return domain.Car{}, err
	}

	l.Info("car updated", "car_id", id)
	return loadCar(ctx, s.Store, id)
}

// Delete empties the car's driver set, then removes the car. Drivers and
// the manufacturer are untouched.
func (s *CarService) Delete(ctx context.Context, caller *domain.CallerIdentity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	l := slogx.FromContext(ctx)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ids, err := tx.Cars().ListDriverIDs(ctx, id)
		if err != nil {
			return err
		}
		if err := syncDrivers(ctx, tx, id, ids, nil); err != nil {
			return err
		}
		return mapNotFound(tx.Cars().DeleteCar(ctx, id))
	})
	if err != nil {
		logUnexpected(l, "failed to delete car", err, "car_id", id)
		return err
	}

	l.Info("car deleted", "car_id", id)
	return nil
}

// ToggleAssignment adds the caller to the car's drivers, or removes them if
// already assigned. It reports whether the caller is assigned afterwards.
func (s *CarService) ToggleAssignment(ctx context.Context, caller *domain.CallerIdentity, carID string) (bool, error) {
	if err := requireCaller(caller); err != nil {
		return false, err
	}

	var assigned bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		car, err := tx.Cars().GetCarByID(ctx, carID)
		if err != nil {
			return mapNotFound(err)
		}
		if car.HasDriver(caller.DriverID) {
			return tx.Cars().RemoveDriver(ctx, carID, caller.DriverID)
		}
		assigned = true
		return tx.Cars().AddDriver(ctx, carID, caller.DriverID)
	})
	if err != nil {
		logUnexpected(slogx.FromContext(ctx), "failed to toggle car assignment", err, "car_id", carID)
		return false, err
	}

	slogx.FromContext(ctx).Info("car assignment toggled", "car_id", carID, "assigned", assigned)
	return assigned, nil
}

// AddDriver puts driverID into the car's driver set.
func (s *CarService) AddDriver(ctx context.Context, caller *domain.CallerIdentity, carID, driverID string) error {
	return s.changeDriver(ctx, caller, carID, driverID, store.Cars.AddDriver)
}

// RemoveDriver takes driverID out of the car's driver set.
func (s *CarService) RemoveDriver(ctx context.Context, caller *domain.CallerIdentity, carID, driverID string) error {
	return s.changeDriver(ctx, caller, carID, driverID, store.Cars.RemoveDriver)
}

func (s *CarService) changeDriver(
	ctx context.Context,
	caller *domain.CallerIdentity,
	carID, driverID string,
	op func(store.Cars, context.Context, string, string) error,
) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Cars().GetCarByID(ctx, carID); err != nil {
			return mapNotFound(err)
		}
		if _, err := tx.Drivers().GetDriverByID(ctx, driverID); err != nil {
			return mapNotFound(err)
		}
		return op(tx.Cars(), ctx, carID, driverID)
	})
}

// checkCarInput validates in and confirms the manufacturer and every driver
// exist.
func checkCarInput(ctx context.Context, tx store.Tx, in *domain.CarInput) error {
	v := validationOf(in.Validate())

	if in.ManufacturerID != "" {
		_, err := tx.Manufacturers().GetManufacturerByID(ctx, in.ManufacturerID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			v.Add("manufacturer", invalidChoice)
		case err != nil:
			return err
		}
	}

	for _, id := range in.DriverIDs {
		_, err := tx.Drivers().GetDriverByID(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			v.Add("drivers", "Select a valid choice. "+id+" is not one of the available choices.")
		case err != nil:
			return err
		}
	}

	return v.Err()
}

// syncDrivers turns the join set from have into want with explicit
// add/remove operations.
func syncDrivers(ctx context.Context, tx store.Tx, carID string, have, want []string) error {
	for _, id := range have {
		if !slices.Contains(want, id) {
			if err := tx.Cars().RemoveDriver(ctx, carID, id); err != nil {
				return err
			}
		}
	}
	for _, id := range want {
		if !slices.Contains(have, id) {
			if err := tx.Cars().AddDriver(ctx, carID, id); err != nil {
				return err
			}
		}
	}
	return nil
}
