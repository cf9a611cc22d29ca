package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/stretchr/testify/require"
)

func testFixture() Fixture {
	return Fixture{
		Manufacturers: []ManufacturerFixture{
			{Name: "Toyota", Country: "Japan"},
			{Name: "Tesla", Country: "USA"},
		},
		Drivers: []DriverFixture{
			{Username: "driver1", Password: "correct-horse-1", AccountAttributes: AccountAttributes{LicenseNumber: "ABC12345"}},
			{Username: "driver2", Password: "correct-horse-2"},
		},
		Cars: []CarFixture{
			{Model: "Corolla", Manufacturer: "Toyota", Drivers: []string{"driver1", "driver2"}},
			{Model: "Model 3", Manufacturer: "Tesla"},
		},
	}
}

func TestFixtureLoad(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	fixtures := &FixtureService{Store: st}

	sum, err := fixtures.Load(ctx, testFixture())
	require.NoError(t, err)
	require.Equal(t, FixtureSummary{Manufacturers: 2, Drivers: 2, Cars: 2}, sum)

	cars, err := st.Cars().ListCars(ctx, store.ListOptions{Search: "corolla"})
	require.NoError(t, err)
	require.Len(t, cars.Items, 1)
	require.Len(t, cars.Items[0].DriverIDs, 2)

	// Fixture accounts can sign in.
	sessions := newSessionService(t, st)
	_, err = sessions.Login(ctx, "driver1", "correct-horse-1")
	require.NoError(t, err)

	t.Run("cars may reference existing drivers", func(t *testing.T) {
		sum, err := fixtures.Load(ctx, Fixture{
			Manufacturers: []ManufacturerFixture{{Name: "Honda"}},
			Cars:          []CarFixture{{Model: "Civic", Manufacturer: "Honda", Drivers: []string{"driver2"}}},
		})
		require.NoError(t, err)
		require.Equal(t, 1, sum.Cars)
	})
}

func TestFixtureLoadIsAllOrNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Fixture)
		field  string
	}{
		{"blank manufacturer", func(f *Fixture) { f.Manufacturers[1].Name = " " }, "name"},
		{"bad license", func(f *Fixture) { f.Drivers[1].LicenseNumber = "abc" }, "license_number"},
		{"missing password", func(f *Fixture) { f.Drivers[1].Password = "" }, "password"},
		{"unknown manufacturer", func(f *Fixture) { f.Cars[1].Manufacturer = "Ford" }, "manufacturer"},
		{"duplicate username", func(f *Fixture) { f.Drivers[1].Username = "driver1" }, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			f := testFixture()
			tt.mutate(&f)

			_, err := (&FixtureService{Store: st}).Load(ctx, f)
			requireFieldError(t, err, tt.field)

			n, err := st.Manufacturers().CountManufacturers(ctx)
			require.NoError(t, err)
			require.Zero(t, n)
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		st := newTestStore(t)
		f := testFixture()
		f.Cars[1].Drivers = []string{"ghost"}

		_, err := (&FixtureService{Store: st}).Load(ctx, f)
		require.ErrorIs(t, err, ErrNotFound)

		n, err := st.Drivers().CountDrivers(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}
