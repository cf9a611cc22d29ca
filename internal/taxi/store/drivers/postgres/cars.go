package postgres

import (
	"context"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/jackc/pgx/v5"
)

type carsRepo struct {
	db dbtx
}

// carSelect joins the manufacturer and aggregates the driver set.
const carSelect = `
	SELECT c.id, c.model, c.manufacturer_id, c.created_at, c.updated_at,
	       m.id, m.name, m.country, m.created_at, m.updated_at,
	       COALESCE((SELECT array_agg(cd.driver_id ORDER BY cd.driver_id) FROM car_drivers cd WHERE cd.car_id = c.id), '{}')
	FROM cars c
	JOIN manufacturers m ON m.id = c.manufacturer_id`

func scanCar(row pgx.Row) (domain.Car, error) {
	var (
		c domain.Car
		m domain.Manufacturer
	)
	err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &c.CreatedAt, &c.UpdatedAt,
		&m.ID, &m.Name, &m.Country, &m.CreatedAt, &m.UpdatedAt, &c.DriverIDs)
	if err != nil {
		return domain.Car{}, err
	}
	c.Manufacturer = &m
	return c, nil
}

func (r *carsRepo) GetCarByID(ctx context.Context, id string) (domain.Car, error) {
	c, err := scanCar(r.db.QueryRow(ctx, carSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return domain.Car{}, mapNotFound(err)
	}
	return c, nil
}

func (r *carsRepo) ListCars(ctx context.Context, opts store.ListOptions) (store.Page[domain.Car], error) {
	opts = opts.Normalize()
	where, args, limit, limitArgs := filter("c.model", opts)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars c`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Car]{}, err
	}

	items, err := r.query(ctx, carSelect+where+` ORDER BY c.model COLLATE "C", c.id`+limit, append(args, limitArgs...)...)
	if err != nil {
		return store.Page[domain.Car]{}, err
	}
	return store.NewPage(items, total, opts), nil
}

func (r *carsRepo) ListCarsByDriver(ctx context.Context, driverID string) ([]domain.Car, error) {
	return r.query(ctx, carSelect+`
		WHERE c.id IN (SELECT car_id FROM car_drivers WHERE driver_id = $1)
		ORDER BY c.model COLLATE "C", c.id`, driverID)
}

func (r *carsRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, sql, args...)
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
	_, err := r.db.Exec(ctx,
		`INSERT INTO cars (id, model, manufacturer_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
		c.ID, c.Model, c.ManufacturerID, timestamp(c.CreatedAt))
	return mapWriteErr(err)
}

func (r *carsRepo) UpdateCar(ctx context.Context, c domain.Car) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE cars SET model = $1, manufacturer_id = $2, updated_at = now() WHERE id = $3`,
		c.Model, c.ManufacturerID, c.ID))
}

func (r *carsRepo) DeleteCar(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id))
}

func (r *carsRepo) CountCars(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&n)
	return n, err
}

func (r *carsRepo) AddDriver(ctx context.Context, carID, driverID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT (car_id, driver_id) DO NOTHING`,
		carID, driverID)
	return mapWriteErr(err)
}

func (r *carsRepo) RemoveDriver(ctx context.Context, carID, driverID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`, carID, driverID)
	return err
}

func (r *carsRepo) ListDriverIDs(ctx context.Context, carID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT driver_id FROM car_drivers WHERE car_id = $1 ORDER BY driver_id`, carID)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
