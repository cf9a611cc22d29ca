// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Run exercises st. newStore must return an empty, migrated store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Manufacturers", func(t *testing.T) { testManufacturers(t, newStore(t)) })
	t.Run("ManufacturerSearch", func(t *testing.T) { testManufacturerSearch(t, newStore(t)) })
	t.Run("Drivers", func(t *testing.T) { testDrivers(t, newStore(t)) })
	t.Run("DriverUniqueness", func(t *testing.T) { testDriverUniqueness(t, newStore(t)) })
	t.Run("Cars", func(t *testing.T) { testCars(t, newStore(t)) })
	t.Run("CarSearchAndPaging", func(t *testing.T) { testCarSearchAndPaging(t, newStore(t)) })
	t.Run("Cascades", func(t *testing.T) { testCascades(t, newStore(t)) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

// NewManufacturer inserts a manufacturer and returns it.
func NewManufacturer(t *testing.T, st store.Store, name, country string) domain.Manufacturer {
	t.Helper()
	m := domain.Manufacturer{ID: idx.New().String(), Name: name, Country: country}
	require.NoError(t, st.Manufacturers().CreateManufacturer(context.Background(), m))
	return m
}

// NewDriver inserts a driver with a placeholder hash and returns it.
func NewDriver(t *testing.T, st store.Store, username, license string) domain.Driver {
	t.Helper()
	d := domain.Driver{
		ID:            idx.New().String(),
		Username:      username,
		PasswordHash:  "$argon2id$placeholder",
		LicenseNumber: license,
	}
	require.NoError(t, st.Drivers().CreateDriver(context.Background(), d))
	return d
}

// NewCar inserts a car with drivers and returns it.
func NewCar(t *testing.T, st store.Store, model, manufacturerID string, driverIDs ...string) domain.Car {
	t.Helper()
	ctx := context.Background()
	c := domain.Car{ID: idx.New().String(), Model: model, ManufacturerID: manufacturerID}
	require.NoError(t, st.Cars().CreateCar(ctx, c))
	for _, id := range driverIDs {
		require.NoError(t, st.Cars().AddDriver(ctx, c.ID, id))
	}
	return c
}

func testManufacturers(t *testing.T, st store.Store) {
	ctx := context.Background()
	repo := st.Manufacturers()

	m := NewManufacturer(t, st, "Toyota", "Japan")

	got, err := repo.GetManufacturerByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Toyota", got.Name)
	require.Equal(t, "Japan", got.Country)
	require.False(t, got.CreatedAt.IsZero())

	m.Name, m.Country = "Toyota Motor", "JP"
	require.NoError(t, repo.UpdateManufacturer(ctx, m))

	got, err = repo.GetManufacturerByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Toyota Motor", got.Name)
	require.Equal(t, "JP", got.Country)

	n, err := repo.CountManufacturers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, repo.DeleteManufacturer(ctx, m.ID))
	_, err = repo.GetManufacturerByID(ctx, m.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, repo.DeleteManufacturer(ctx, m.ID), store.ErrNotFound)
	require.ErrorIs(t, repo.UpdateManufacturer(ctx, m), store.ErrNotFound)
}

func testManufacturerSearch(t *testing.T, st store.Store) {
	ctx := context.Background()
	NewManufacturer(t, st, "Toyota", "Japan")
	NewManufacturer(t, st, "Tesla", "USA")
	NewManufacturer(t, st, "BMW", "Germany")
	NewManufacturer(t, st, "100% Electric", "")

	names := func(opts store.ListOptions) []string {
		page, err := st.Manufacturers().ListManufacturers(ctx, opts)
		require.NoError(t, err)
		out := []string{}
		for _, m := range page.Items {
			out = append(out, m.Name)
		}
		return out
	}

	require.Equal(t, []string{"100% Electric", "BMW", "Tesla", "Toyota"}, names(store.ListOptions{}))
	require.Equal(t, []string{"100% Electric", "Tesla", "Toyota"}, names(store.ListOptions{Search: "T"}))
	require.Equal(t, []string{"Toyota"}, names(store.ListOptions{Search: "yOt"}))
	require.Equal(t, []string{"100% Electric"}, names(store.ListOptions{Search: "%"}))
	require.Empty(t, names(store.ListOptions{Search: "_"}))
	require.Empty(t, names(store.ListOptions{Search: "Honda"}))

	t.Run("non-ASCII terms fold case", func(t *testing.T) {
		NewManufacturer(t, st, "Škoda", "Czechia")
		NewManufacturer(t, st, "Öko Motors", "Austria")

		for _, term := range []string{"Škoda", "škoda", "ŠKODA", "Ško", "KOD"} {
			require.Equal(t, []string{"Škoda"}, names(store.ListOptions{Search: term}), term)
		}
		for _, term := range []string{"Öko", "öKO", "ÖKO MOTORS"} {
			require.Equal(t, []string{"Öko Motors"}, names(store.ListOptions{Search: term}), term)
		}
	})
}

func testDrivers(t *testing.T, st store.Store) {
	ctx := context.Background()
	repo := st.Drivers()

	d := NewDriver(t, st, "driver1", "ABC12345")
	NewDriver(t, st, "driver2", "DEF67890")
	NewDriver(t, st, "admin", "")

	got, err := repo.GetDriverByUsername(ctx, "driver1")
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.Equal(t, "$argon2id$placeholder", got.PasswordHash)

	_, err = repo.GetDriverByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	page, err := repo.ListDrivers(ctx, store.ListOptions{Search: "DRIVER1"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, d.ID, page.Items[0].ID)

	page, err = repo.ListDrivers(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Equal(t, "admin", page.Items[0].Username)

	require.NoError(t, repo.UpdateDriverLicense(ctx, d.ID, "XYZ67890"))
	require.NoError(t, repo.UpdateDriverProfile(ctx, d.ID, "John", "Doe"))

	got, err = repo.GetDriverByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "XYZ67890", got.LicenseNumber)
	require.Equal(t, "John", got.FirstName)
	require.Equal(t, "Doe", got.LastName)
	require.Equal(t, "driver1", got.Username)

	require.NoError(t, repo.DeleteDriver(ctx, d.ID))
	_, err = repo.GetDriverByID(ctx, d.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, repo.UpdateDriverLicense(ctx, d.ID, "QQQ11111"), store.ErrNotFound)
}

func testDriverUniqueness(t *testing.T, st store.Store) {
	ctx := context.Background()
	NewDriver(t, st, "driver1", "ABC12345")
	NewDriver(t, st, "nolicense1", "")
	NewDriver(t, st, "nolicense2", "")

	conflictField := func(err error) string {
		t.Helper()
		require.ErrorIs(t, err, store.ErrAlreadyExists)
		var ce *store.ConflictError
		require.True(t, errors.As(err, &ce))
		return ce.Field
	}

	err := st.Drivers().CreateDriver(ctx, domain.Driver{ID: idx.New().String(), Username: "driver1", PasswordHash: "x"})
	require.Equal(t, "username", conflictField(err))

	err = st.Drivers().CreateDriver(ctx, domain.Driver{ID: idx.New().String(), Username: "other", PasswordHash: "x", LicenseNumber: "ABC12345"})
	require.Equal(t, "license_number", conflictField(err))

	other := NewDriver(t, st, "driver2", "DEF67890")
	err = st.Drivers().UpdateDriverLicense(ctx, other.ID, "ABC12345")
	require.Equal(t, "license_number", conflictField(err))
}

func testCars(t *testing.T, st store.Store) {
	ctx := context.Background()
	repo := st.Cars()

	toyota := NewManufacturer(t, st, "Toyota", "Japan")
	honda := NewManufacturer(t, st, "Honda", "Japan")
	d1 := NewDriver(t, st, "driver1", "ABC12345")
	d2 := NewDriver(t, st, "driver2", "DEF67890")

	c := NewCar(t, st, "Corolla", toyota.ID, d1.ID)

	got, err := repo.GetCarByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Corolla", got.Model)
	require.Equal(t, "Toyota", got.Manufacturer.Name)
	require.Equal(t, []string{d1.ID}, got.DriverIDs)

	// Join set: add is idempotent, remove of an absent driver is a no-op.
	require.NoError(t, repo.AddDriver(ctx, c.ID, d2.ID))
	require.NoError(t, repo.AddDriver(ctx, c.ID, d2.ID))
	ids, err := repo.ListDriverIDs(ctx, c.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{d1.ID, d2.ID}, ids)

	require.NoError(t, repo.RemoveDriver(ctx, c.ID, d1.ID))
	require.NoError(t, repo.RemoveDriver(ctx, c.ID, d1.ID))
	ids, err = repo.ListDriverIDs(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, []string{d2.ID}, ids)

	drivers, err := st.Drivers().ListDriversByCar(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "driver2", drivers[0].Username)

	cars, err := repo.ListCarsByDriver(ctx, d2.ID)
	require.NoError(t, err)
	require.Len(t, cars, 1)

	c.Model, c.ManufacturerID = "Civic", honda.ID
	require.NoError(t, repo.UpdateCar(ctx, c))
	got, err = repo.GetCarByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Civic", got.Model)
	require.Equal(t, honda.ID, got.Manufacturer.ID)

	// Unknown manufacturer is rejected by the foreign key.
	err = repo.CreateCar(ctx, domain.Car{ID: idx.New().String(), Model: "Ghost", ManufacturerID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.DeleteCar(ctx, c.ID))
	_, err = repo.GetCarByID(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	ids, err = repo.ListDriverIDs(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, ids, "join rows go with the car")

	_, err = st.Drivers().GetDriverByID(ctx, d2.ID)
	require.NoError(t, err, "drivers survive car deletion")
	_, err = st.Manufacturers().GetManufacturerByID(ctx, honda.ID)
	require.NoError(t, err, "manufacturers survive car deletion")
}

func testCarSearchAndPaging(t *testing.T, st store.Store) {
	ctx := context.Background()
	m := NewManufacturer(t, st, "Toyota", "Japan")
	for _, model := range []string{"Corolla", "Camry", "Prius", "Corolla Cross", "Land Cruiser"} {
		NewCar(t, st, model, m.ID)
	}

	page, err := st.Cars().ListCars(ctx, store.ListOptions{Search: "corolla"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.Equal(t, "Corolla", page.Items[0].Model)
	require.Equal(t, "Corolla Cross", page.Items[1].Model)

	page, err = st.Cars().ListCars(ctx, store.ListOptions{Search: "Supra"})
	require.NoError(t, err)
	require.Zero(t, page.Total)
	require.Empty(t, page.Items)

	page, err = st.Cars().ListCars(ctx, store.ListOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	require.Equal(t, "Corolla Cross", page.Items[0].Model)
	require.Equal(t, "Land Cruiser", page.Items[1].Model)
	require.True(t, page.HasNext())
	require.True(t, page.HasPrev())

	page, err = st.Cars().ListCars(ctx, store.ListOptions{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.False(t, page.HasNext())
}

func testCascades(t *testing.T, st store.Store) {
	ctx := context.Background()
	m := NewManufacturer(t, st, "Lada", "Russia")
	d := NewDriver(t, st, "driver1", "ABC12345")
	c := NewCar(t, st, "Niva", m.ID, d.ID)

	// Deleting a driver drops only its assignments.
	require.NoError(t, st.Drivers().DeleteDriver(ctx, d.ID))
	got, err := st.Cars().GetCarByID(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, got.DriverIDs)

	// Deleting a manufacturer takes its cars.
	require.NoError(t, st.Manufacturers().DeleteManufacturer(ctx, m.ID))
	_, err = st.Cars().GetCarByID(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTransactions(t *testing.T, st store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		m := domain.Manufacturer{ID: idx.New().String(), Name: "Rolled back"}
		if err := tx.Manufacturers().CreateManufacturer(ctx, m); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := st.Manufacturers().CountManufacturers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		m := domain.Manufacturer{ID: idx.New().String(), Name: "Committed"}
		return tx.Manufacturers().CreateManufacturer(ctx, m)
	})
	require.NoError(t, err)

	n, err = st.Manufacturers().CountManufacturers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.ErrorIs(t, err, store.ErrNestedTx)
		require.ErrorIs(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), store.ErrNestedTx)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, st.Ping(ctx))
}
