package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/internal/taxi/store/drivers/sqlite"
	"github.com/aussiebroadwan/taxi/internal/taxi/store/storetest"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "taxi-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newSessionService(t *testing.T, st store.Store) *SessionService {
	t.Helper()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "taxi-test", NumKeys: 2})
	require.NoError(t, err)
	return &SessionService{Store: st, Keys: km, Issuer: "taxi-test", TTL: time.Hour}
}

// signIn creates an account and returns it as a caller.
func signIn(t *testing.T, st store.Store, username string) *domain.CallerIdentity {
	t.Helper()
	d := storetest.NewDriver(t, st, username, "")
	return &domain.CallerIdentity{DriverID: d.ID, Username: d.Username}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "expected validation error, got %v", err)
	require.Contains(t, v.Fields, field)
}

func TestAnonymousCallerIsRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	mfr := &ManufacturerService{Store: st}
	cars := &CarService{Store: st}
	drivers := &DriverService{Store: st}
	index := &IndexService{Store: st}
	toyota := storetest.NewManufacturer(t, st, "Toyota", "Japan")

	ops := map[string]func(*domain.CallerIdentity) error{
		"manufacturer list": func(c *domain.CallerIdentity) error {
			_, err := mfr.List(ctx, c, store.ListOptions{})
			return err
		},
		"manufacturer create": func(c *domain.CallerIdentity) error {
			_, err := mfr.Create(ctx, c, domain.ManufacturerInput{Name: "Toyota"})
			return err
		},
		"manufacturer delete": func(c *domain.CallerIdentity) error { return mfr.Delete(ctx, c, "x") },
		"car list": func(c *domain.CallerIdentity) error {
			_, err := cars.List(ctx, c, store.ListOptions{})
			return err
		},
		"car detail": func(c *domain.CallerIdentity) error {
			_, err := cars.Get(ctx, c, "x")
			return err
		},
		"car create": func(c *domain.CallerIdentity) error {
			_, err := cars.Create(ctx, c, domain.CarInput{Model: "Corolla", ManufacturerID: toyota.ID})
			return err
		},
		"car toggle": func(c *domain.CallerIdentity) error {
			_, err := cars.ToggleAssignment(ctx, c, "x")
			return err
		},
		"driver list": func(c *domain.CallerIdentity) error {
			_, err := drivers.List(ctx, c, store.ListOptions{})
			return err
		},
		"driver create": func(c *domain.CallerIdentity) error {
			_, err := drivers.Create(ctx, c, domain.DriverInput{
				Username:      "driver1",
				Password1:     "Strongpassword123",
				Password2:     "Strongpassword123",
				LicenseNumber: "ABC12345",
			})
			return err
		},
		"driver update": func(c *domain.CallerIdentity) error {
			_, err := drivers.UpdateLicense(ctx, c, "x", domain.LicenseInput{LicenseNumber: "XYZ67890"})
			return err
		},
		"index": func(c *domain.CallerIdentity) error {
			_, err := index.Stats(ctx, c)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, op(nil), ErrAuthenticationRequired)
			require.ErrorIs(t, op(&domain.CallerIdentity{}), ErrAuthenticationRequired)
		})
	}

	// Nothing was written.
	n, err := st.Manufacturers().CountManufacturers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = st.Cars().CountCars(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = st.Drivers().CountDrivers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestManufacturerLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")
	svc := &ManufacturerService{Store: st}

	m, err := svc.Create(ctx, caller, domain.ManufacturerInput{Name: " Toyota ", Country: "Japan"})
	require.NoError(t, err)
	require.Equal(t, "Toyota Japan", m.String())

	_, err = svc.Create(ctx, caller, domain.ManufacturerInput{Country: "Japan"})
	requireFieldError(t, err, "name")

	m, err = svc.Update(ctx, caller, m.ID, domain.ManufacturerInput{Name: "Toyota", Country: "JP"})
	require.NoError(t, err)
	require.Equal(t, "JP", m.Country)

	_, err = svc.Update(ctx, caller, "missing", domain.ManufacturerInput{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	page, err := svc.List(ctx, caller, store.ListOptions{Search: "toy"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	require.NoError(t, svc.Delete(ctx, caller, m.ID))
	require.ErrorIs(t, svc.Delete(ctx, caller, m.ID), ErrNotFound)

	_, err = svc.Get(ctx, caller, m.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCarScenario(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")

	mfr := &ManufacturerService{Store: st}
	cars := &CarService{Store: st}

	toyota, err := mfr.Create(ctx, caller, domain.ManufacturerInput{Name: "Toyota", Country: "Japan"})
	require.NoError(t, err)
	driver1 := storetest.NewDriver(t, st, "driver1", "ABC12345")

	corolla, err := cars.Create(ctx, caller, domain.CarInput{
		Model:          "Corolla",
		ManufacturerID: toyota.ID,
		DriverIDs:      []string{driver1.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "Corolla", corolla.String())
	require.Equal(t, "Toyota Japan", corolla.Manufacturer.String())
	require.Len(t, corolla.Drivers, 1)
	require.Equal(t, "driver1", corolla.Drivers[0].Username)

	page, err := cars.List(ctx, caller, store.ListOptions{Search: "cor"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	page, err = cars.List(ctx, caller, store.ListOptions{Search: "Camry"})
	require.NoError(t, err)
	require.Empty(t, page.Items)
}

func TestCarReferencesAreChecked(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")
	cars := &CarService{Store: st}

	m := storetest.NewManufacturer(t, st, "Toyota", "Japan")

	_, err := cars.Create(ctx, caller, domain.CarInput{Model: "Corolla", ManufacturerID: "missing"})
	requireFieldError(t, err, "manufacturer")

	_, err = cars.Create(ctx, caller, domain.CarInput{Model: "Corolla", ManufacturerID: m.ID, DriverIDs: []string{"ghost"}})
	requireFieldError(t, err, "drivers")

	_, err = cars.Create(ctx, caller, domain.CarInput{ManufacturerID: m.ID})
	requireFieldError(t, err, "model")

	n, err := st.Cars().CountCars(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCarDriverSet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")
	cars := &CarService{Store: st}

	m := storetest.NewManufacturer(t, st, "Toyota", "Japan")
	a := storetest.NewDriver(t, st, "alice", "AAA11111")
	b := storetest.NewDriver(t, st, "bob", "BBB22222")
	c := storetest.NewDriver(t, st, "carol", "CCC33333")

	car, err := cars.Create(ctx, caller, domain.CarInput{
		Model:          "Corolla",
		ManufacturerID: m.ID,
		DriverIDs:      []string{a.ID, b.ID, a.ID},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID, b.ID}, car.DriverIDs)

	t.Run("update replaces the set", func(t *testing.T) {
		car, err := cars.Update(ctx, caller, car.ID, domain.CarInput{
			Model:          "Corolla Cross",
			ManufacturerID: m.ID,
			DriverIDs:      []string{b.ID, c.ID},
		})
		require.NoError(t, err)
		require.Equal(t, "Corolla Cross", car.Model)
		require.ElementsMatch(t, []string{b.ID, c.ID}, car.DriverIDs)
	})

	t.Run("update of unknown car", func(t *testing.T) {
		_, err := cars.Update(ctx, caller, "missing", domain.CarInput{Model: "x", ManufacturerID: m.ID})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("explicit add and remove", func(t *testing.T) {
		require.NoError(t, cars.AddDriver(ctx, caller, car.ID, a.ID))
		require.NoError(t, cars.AddDriver(ctx, caller, car.ID, a.ID))
		require.NoError(t, cars.RemoveDriver(ctx, caller, car.ID, c.ID))

		got, err := cars.Get(ctx, caller, car.ID)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{a.ID, b.ID}, got.DriverIDs)

		require.ErrorIs(t, cars.AddDriver(ctx, caller, car.ID, "ghost"), ErrNotFound)
		require.ErrorIs(t, cars.RemoveDriver(ctx, caller, "missing", a.ID), ErrNotFound)
	})

	t.Run("delete keeps drivers and manufacturer", func(t *testing.T) {
		require.NoError(t, cars.Delete(ctx, caller, car.ID))

		_, err := cars.Get(ctx, caller, car.ID)
		require.ErrorIs(t, err, ErrNotFound)

		ids, err := st.Cars().ListDriverIDs(ctx, car.ID)
		require.NoError(t, err)
		require.Empty(t, ids)

		nd, err := st.Drivers().CountDrivers(ctx)
		require.NoError(t, err)
		require.Equal(t, 4, nd)

		_, err = st.Manufacturers().GetManufacturerByID(ctx, m.ID)
		require.NoError(t, err)

		require.ErrorIs(t, cars.Delete(ctx, caller, car.ID), ErrNotFound)
	})
}

func TestToggleAssignment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "driver1")
	cars := &CarService{Store: st}

	m := storetest.NewManufacturer(t, st, "Toyota", "Japan")
	car := storetest.NewCar(t, st, "Corolla", m.ID)

	assigned, err := cars.ToggleAssignment(ctx, caller, car.ID)
	require.NoError(t, err)
	require.True(t, assigned)

	got, err := cars.Get(ctx, caller, car.ID)
	require.NoError(t, err)
	require.True(t, got.HasDriver(caller.DriverID))

	assigned, err = cars.ToggleAssignment(ctx, caller, car.ID)
	require.NoError(t, err)
	require.False(t, assigned)

	_, err = cars.ToggleAssignment(ctx, caller, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDriverLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")
	drivers := &DriverService{Store: st}

	in := domain.DriverInput{
		Username:      "driver1",
		Password1:     "Tr1cky-pass",
		Password2:     "Tr1cky-pass",
		LicenseNumber: "ABC12345",
		FirstName:     "Jane",
		LastName:      "Doe",
	}
	d, err := drivers.Create(ctx, caller, in)
	require.NoError(t, err)
	require.Equal(t, "driver1 (Jane Doe)", d.String())
	require.NotEqual(t, in.Password1, d.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword(in.Password1, d.PasswordHash))

	t.Run("duplicate username", func(t *testing.T) {
		dup := in
		dup.LicenseNumber = "XYZ00001"
		_, err := drivers.Create(ctx, caller, dup)
		requireFieldError(t, err, "username")
	})

	t.Run("duplicate license", func(t *testing.T) {
		dup := in
		dup.Username = "driver2"
		_, err := drivers.Create(ctx, caller, dup)
		requireFieldError(t, err, "license_number")
	})

	t.Run("password mismatch", func(t *testing.T) {
		bad := in
		bad.Username, bad.LicenseNumber, bad.Password2 = "driver3", "QQQ11111", "other-pass1"
		_, err := drivers.Create(ctx, caller, bad)
		requireFieldError(t, err, "password2")
	})

	t.Run("license update", func(t *testing.T) {
		got, err := drivers.UpdateLicense(ctx, caller, d.ID, domain.LicenseInput{LicenseNumber: "XYZ67890"})
		require.NoError(t, err)
		require.Equal(t, "XYZ67890", got.LicenseNumber)
		require.Equal(t, "driver1", got.Username)
		require.Equal(t, "Jane", got.FirstName)

		_, err = drivers.UpdateLicense(ctx, caller, d.ID, domain.LicenseInput{LicenseNumber: "xyz67890"})
		requireFieldError(t, err, "license_number")

		_, err = drivers.UpdateLicense(ctx, caller, "missing", domain.LicenseInput{LicenseNumber: "XYZ67890"})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("profile update", func(t *testing.T) {
		got, err := drivers.UpdateProfile(ctx, caller, d.ID, domain.ProfileInput{FirstName: "Janet", LastName: "Smith"})
		require.NoError(t, err)
		require.Equal(t, "driver1 (Janet Smith)", got.String())
		require.Equal(t, "XYZ67890", got.LicenseNumber)
	})

	t.Run("search", func(t *testing.T) {
		page, err := drivers.List(ctx, caller, store.ListOptions{Search: "DRIVER"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
	})

	t.Run("delete removes assignments only", func(t *testing.T) {
		m := storetest.NewManufacturer(t, st, "Toyota", "Japan")
		car := storetest.NewCar(t, st, "Corolla", m.ID, d.ID)

		got, err := drivers.Get(ctx, caller, d.ID)
		require.NoError(t, err)
		require.Len(t, got.Cars, 1)

		require.NoError(t, drivers.Delete(ctx, caller, d.ID))

		c, err := st.Cars().GetCarByID(ctx, car.ID)
		require.NoError(t, err)
		require.Empty(t, c.DriverIDs)

		_, err = drivers.Get(ctx, caller, d.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sessions := newSessionService(t, st)

	d, err := sessions.CreateAccount(ctx, "driver1", "1234", AccountAttributes{LicenseNumber: "ABC12345"})
	require.NoError(t, err)
	require.Equal(t, "ABC12345", d.LicenseNumber)

	_, err = sessions.CreateAccount(ctx, "driver2", "", AccountAttributes{})
	requireFieldError(t, err, "password")

	_, err = sessions.CreateAccount(ctx, "driver1", "other", AccountAttributes{})
	requireFieldError(t, err, "username")

	spaced, err := sessions.CreateAccount(ctx, "Test Driver", "pass", AccountAttributes{})
	require.NoError(t, err)
	require.Equal(t, "Test Driver", spaced.Username)

	require.True(t, sessions.VerifyCredential(ctx, d, "1234"))
	require.False(t, sessions.VerifyCredential(ctx, d, "12345"))

	_, err = sessions.Login(ctx, "driver1", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = sessions.Login(ctx, "nobody", "1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := sessions.Login(ctx, "driver1", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, d.ID, sess.Caller.DriverID)
	require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	caller, err := sessions.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, "driver1", caller.Username)

	_, err = sessions.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	_, err = sessions.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrAuthenticationRequired)

	require.NoError(t, (&DriverService{Store: st}).Delete(ctx, caller, d.ID))
	_, err = sessions.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestIndexStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	caller := signIn(t, st, "admin")

	m := storetest.NewManufacturer(t, st, "Toyota", "Japan")
	storetest.NewCar(t, st, "Corolla", m.ID, caller.DriverID)
	storetest.NewCar(t, st, "Camry", m.ID)

	stats, err := (&IndexService{Store: st}).Stats(ctx, caller)
	require.NoError(t, err)
	require.Equal(t, Stats{NumDrivers: 1, NumCars: 2, NumManufacturers: 1}, stats)
}
