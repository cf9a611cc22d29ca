package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrNestedTx      = errors.New("store: nested transactions are not supported")
)

// ConflictError is returned when a write violates a unique constraint. It
// matches ErrAlreadyExists with errors.Is.
type ConflictError struct {
	// Field is the conflicting column, e.g. "username" or "license_number".
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	return "store: " + e.Field + " already exists"
}

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

func (e *ConflictError) Unwrap() error { return e.Err }

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a transaction
// can hand out the same repositories bound to itself.
type Store interface {
	Manufacturers() Manufacturers
	Cars() Cars
	Drivers() Drivers

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
// Tx and WithTx on a Tx return ErrNestedTx.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Manufacturers interface {
	GetManufacturerByID(ctx context.Context, id string) (domain.Manufacturer, error)

	// ListManufacturers filters on name and orders by name, then id.
	ListManufacturers(ctx context.Context, opts ListOptions) (Page[domain.Manufacturer], error)

	CreateManufacturer(ctx context.Context, m domain.Manufacturer) error

	// UpdateManufacturer writes name and country and bumps updated_at.
	UpdateManufacturer(ctx context.Context, m domain.Manufacturer) error

	// DeleteManufacturer cascades to the manufacturer's cars (per schema).
	DeleteManufacturer(ctx context.Context, id string) error

	CountManufacturers(ctx context.Context) (int, error)
}

type Drivers interface {
	GetDriverByID(ctx context.Context, id string) (domain.Driver, error)

	// GetDriverByUsername is used during login.
	GetDriverByUsername(ctx context.Context, username string) (domain.Driver, error)

	// ListDrivers filters on username and orders by username, then id.
	ListDrivers(ctx context.Context, opts ListOptions) (Page[domain.Driver], error)

	// ListDriversByCar returns the drivers assigned to carID.
	ListDriversByCar(ctx context.Context, carID string) ([]domain.Driver, error)

	// CreateDriver fails with a *ConflictError on a taken username or license.
	CreateDriver(ctx context.Context, d domain.Driver) error

	UpdateDriverLicense(ctx context.Context, id, license string) error
	UpdateDriverProfile(ctx context.Context, id, firstName, lastName string) error

	// DeleteDriver removes the driver and its car assignments (per schema).
	DeleteDriver(ctx context.Context, id string) error

	CountDrivers(ctx context.Context) (int, error)
}

type Cars interface {
	// GetCarByID returns the car with its manufacturer and driver ids.
	GetCarByID(ctx context.Context, id string) (domain.Car, error)

	// ListCars filters on model and orders by model, then id.
	ListCars(ctx context.Context, opts ListOptions) (Page[domain.Car], error)

	// ListCarsByDriver returns the cars driverID is assigned to.
	ListCarsByDriver(ctx context.Context, driverID string) ([]domain.Car, error)

	// CreateCar inserts the car row only; drivers go through AddDriver.
	CreateCar(ctx context.Context, c domain.Car) error

	// UpdateCar writes model and manufacturer and bumps updated_at.
	UpdateCar(ctx context.Context, c domain.Car) error

	// DeleteCar removes the car and its join rows (per schema).
	DeleteCar(ctx context.Context, id string) error

	CountCars(ctx context.Context) (int, error)

	// AddDriver puts driverID in the car's driver set. Adding a present
	// driver is a no-op.
	AddDriver(ctx context.Context, carID, driverID string) error

	// RemoveDriver takes driverID out of the car's driver set. Removing an
	// absent driver is a no-op.
	RemoveDriver(ctx context.Context, carID, driverID string) error

	// ListDriverIDs returns the car's driver set in id order.
	ListDriverIDs(ctx context.Context, carID string) ([]string, error)
}
