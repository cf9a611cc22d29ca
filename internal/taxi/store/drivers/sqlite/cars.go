package sqlite

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

type carsRepo struct {
	db dbtx
}

// carSelect joins the manufacturer and folds the driver set into one
// comma-separated column.
const carSelect = `
	SELECT c.id, c.model, c.manufacturer_id, c.created_at, c.updated_at,
	       m.id, m.name, m.country, m.created_at, m.updated_at,
	       COALESCE((SELECT GROUP_CONCAT(cd.driver_id, ',') FROM car_drivers cd WHERE cd.car_id = c.id), '')
	FROM cars c
	JOIN manufacturers m ON m.id = c.manufacturer_id`

func scanCar(row interface{ Scan(...any) error }) (domain.Car, error) {
	var (
		c       domain.Car
		m       domain.Manufacturer
		drivers string
	)
	err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &c.CreatedAt, &c.UpdatedAt,
		&m.ID, &m.Name, &m.Country, &m.CreatedAt, &m.UpdatedAt, &drivers)
	if err != nil {
		return domain.Car{}, err
	}
	c.Manufacturer = &m
	c.DriverIDs = splitIDs(drivers)
	return c, nil
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	ids := strings.Split(s, ",")
	slices.Sort(ids)
	return ids
}

func (r *carsRepo) GetCarByID(ctx context.Context, id string) (domain.Car, error) {
	c, err := scanCar(r.db.QueryRowContext(ctx, carSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return domain.Car{}, mapNotFound(err)
	}
	return c, nil
}

func (r *carsRepo) ListCars(ctx context.Context, opts store.ListOptions) (store.Page[domain.Car], error) {
	opts = opts.Normalize()

	where, args := "", []any{}
	if opts.Search != "" {
		where = searchClause("c.model")
		args = append(args, likeArg(opts.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars c`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Car]{}, err
	}

	limit, limitArgs := pageClause(opts)
	items, err := r.query(ctx, carSelect+where+` ORDER BY c.model, c.id`+limit, append(args, limitArgs...)...)
	if err != nil {
		return store.Page[domain.Car]{}, err
	}
	return store.NewPage(items, total, opts), nil
}

func (r *carsRepo) ListCarsByDriver(ctx context.Context, driverID string) ([]domain.Car, error) {
	return r.query(ctx, carSelect+`
		WHERE c.id IN (SELECT car_id FROM car_drivers WHERE driver_id = ?)
		ORDER BY c.model, c.id`, driverID)
}

func (r *carsRepo) query(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *carsRepo) CreateCar(ctx context.Context, c domain.Car) error {
	now := timestamp(c.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cars (id, model, manufacturer_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Model, c.ManufacturerID, now, now)
	return mapWriteErr(err)
}

func (r *carsRepo) UpdateCar(ctx context.Context, c domain.Car) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE cars SET model = ?, manufacturer_id = ?, updated_at = ? WHERE id = ?`,
		c.Model, c.ManufacturerID, time.Now().UTC(), c.ID))
}

func (r *carsRepo) DeleteCar(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id))
}

func (r *carsRepo) CountCars(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars`).Scan(&n)
	return n, err
}

func (r *carsRepo) AddDriver(ctx context.Context, carID, driverID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO car_drivers (car_id, driver_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (car_id, driver_id) DO NOTHING`,
		carID, driverID, time.Now().UTC())
	return mapWriteErr(err)
}

func (r *carsRepo) RemoveDriver(ctx context.Context, carID, driverID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM car_drivers WHERE car_id = ? AND driver_id = ?`, carID, driverID)
	return err
}

func (r *carsRepo) ListDriverIDs(ctx context.Context, carID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT driver_id FROM car_drivers WHERE car_id = ? ORDER BY driver_id`, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
