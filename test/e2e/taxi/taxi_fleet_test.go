package taxi_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/taxi/pkg/taxisdk"
	"github.com/stretchr/testify/require"
)

// TestFleetLifecycle walks manufacturers, drivers and cars through create,
// search, update and delete.
func TestFleetLifecycle(t *testing.T) {
	baseURL, container := setupTaxiContainer(t)
	client := taxisdk.NewClient(baseURL)
	admin := loginAdmin(t, client, container)
	ctx := t.Context()

	toyota, err := admin.CreateManufacturer(ctx, taxisdk.ManufacturerRequest{Name: "Toyota", Country: "Japan"})
	require.NoError(t, err)
	_, err = admin.CreateManufacturer(ctx, taxisdk.ManufacturerRequest{Name: "Tesla", Country: "USA"})
	require.NoError(t, err)

	mfrs, err := admin.ListManufacturers(ctx, taxisdk.ListOptions{Search: "toy"})
	require.NoError(t, err)
	require.Len(t, mfrs.Manufacturers, 1)
	require.Equal(t, "toy", mfrs.Search)

	driver, err := admin.CreateDriver(ctx, taxisdk.DriverRequest{
		Username:      "driver1",
		Password1:     "Driver-pass-1",
		Password2:     "Driver-pass-1",
		LicenseNumber: "ABC12345",
		FirstName:     "Ada",
	})
	require.NoError(t, err)

	car, err := admin.CreateCar(ctx, taxisdk.CarRequest{
		Model:        "Corolla",
		Manufacturer: toyota.ID,
		Drivers:      []string{driver.ID},
	})
	require.NoError(t, err)
	require.Equal(t, []string{driver.ID}, car.DriverIDs)

	t.Run("search is case-insensitive", func(t *testing.T) {
		cars, err := admin.ListCars(ctx, taxisdk.ListOptions{Search: "COR"})
		require.NoError(t, err)
		require.Len(t, cars.Cars, 1)

		drivers, err := admin.ListDrivers(ctx, taxisdk.ListOptions{Search: "DRIVER"})
		require.NoError(t, err)
		require.Len(t, drivers.Drivers, 1)
	})

	t.Run("toggle assignment", func(t *testing.T) {
		assigned, err := admin.ToggleCarAssignment(ctx, car.ID)
		require.NoError(t, err)
		require.True(t, assigned)

		detail, err := admin.GetCar(ctx, car.ID)
		require.NoError(t, err)
		require.True(t, detail.IsAssigned)
		require.Len(t, detail.Car.DriverIDs, 2)

		assigned, err = admin.ToggleCarAssignment(ctx, car.ID)
		require.NoError(t, err)
		require.False(t, assigned)
	})

	t.Run("license update", func(t *testing.T) {
		_, err := admin.UpdateDriverLicense(ctx, driver.ID, "abc12345")
		apiErr := assertAPIError(t, err, http.StatusUnprocessableEntity, taxisdk.ErrorCodeValidation)
		require.Contains(t, apiErr.Fields, "license_number")

		updated, err := admin.UpdateDriverLicense(ctx, driver.ID, "XYZ67890")
		require.NoError(t, err)
		require.Equal(t, "XYZ67890", updated.LicenseNumber)
	})

	t.Run("car delete keeps drivers", func(t *testing.T) {
		require.NoError(t, admin.DeleteCar(ctx, car.ID))

		_, err := admin.GetCar(ctx, car.ID)
		require.True(t, taxisdk.IsNotFound(err))

		d, err := admin.GetDriver(ctx, driver.ID)
		require.NoError(t, err)
		require.Empty(t, d.Cars)
	})

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, taxisdk.StatsResponse{NumDrivers: 2, NumCars: 0, NumManufacturers: 2}, *stats)
}

// TestValidationFailures checks bad input is rejected with field messages.
func TestValidationFailures(t *testing.T) {
	baseURL, container := setupTaxiContainer(t)
	client := taxisdk.NewClient(baseURL)
	admin := loginAdmin(t, client, container)
	ctx := t.Context()

	_, err := admin.CreateManufacturer(ctx, taxisdk.ManufacturerRequest{Name: strings.Repeat("x", 256)})
	apiErr := assertAPIError(t, err, http.StatusUnprocessableEntity, taxisdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Fields, "name")

	_, err = admin.CreateCar(ctx, taxisdk.CarRequest{Model: "Civic", Manufacturer: "missing"})
	apiErr = assertAPIError(t, err, http.StatusUnprocessableEntity, taxisdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Fields, "manufacturer")

	_, err = admin.CreateDriver(ctx, taxisdk.DriverRequest{
		Username:      adminUsername,
		Password1:     "Another-pass-1",
		Password2:     "Another-pass-1",
		LicenseNumber: "DUP12345",
	})
	apiErr = assertAPIError(t, err, http.StatusUnprocessableEntity, taxisdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Fields, "username")

	_, err = admin.GetManufacturer(ctx, "missing")
	assertAPIError(t, err, http.StatusNotFound, taxisdk.ErrorCodeNotFound)
}

// TestLoadDataCommand seeds the database from a fixture inside the
// container and reads it back over HTTP.
func TestLoadDataCommand(t *testing.T) {
	baseURL, container := setupTaxiContainer(t)
	client := taxisdk.NewClient(baseURL)

	fixture := `
manufacturers:
  - name: Toyota
drivers:
  - username: driver1
    password: Driver-pass-1
cars:
  - model: Corolla
    manufacturer: Toyota
    drivers: [driver1]
`
	err := container.CopyToContainer(t.Context(), []byte(fixture), "/data/fixture.yaml", 0o644)
	require.NoError(t, err)

	out := runCLI(t, container, "loaddata", "/data/fixture.yaml")
	require.Contains(t, out, "Installed 3 object(s)")

	driver, err := client.Login(t.Context(), "driver1", "Driver-pass-1")
	require.NoError(t, err)

	cars, err := driver.ListCars(t.Context(), taxisdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, cars.Cars, 1)

	detail, err := driver.GetCar(t.Context(), cars.Cars[0].ID)
	require.NoError(t, err)
	require.True(t, detail.IsAssigned)
}
