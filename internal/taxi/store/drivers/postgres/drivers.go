package postgres

import (
	"context"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/jackc/pgx/v5"
)

type driversRepo struct {
	db dbtx
}

const driverColumns = `d.id, d.username, d.password_hash, d.license_number, d.first_name, d.last_name, d.created_at, d.updated_at`

func scanDriver(row pgx.Row) (domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(&d.ID, &d.Username, &d.PasswordHash, &d.LicenseNumber,
		&d.FirstName, &d.LastName, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *driversRepo) GetDriverByID(ctx context.Context, id string) (domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = $1`, id))
	if err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	return d, nil
}

func (r *driversRepo) GetDriverByUsername(ctx context.Context, username string) (domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.username = $1`, username))
	if err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	return d, nil
}

func (r *driversRepo) ListDrivers(ctx context.Context, opts store.ListOptions) (store.Page[domain.Driver], error) {
	opts = opts.Normalize()
	where, args, limit, limitArgs := filter("d.username", opts)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers d`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Driver]{}, err
	}

	items, err := r.query(ctx,
		`SELECT `+driverColumns+` FROM drivers d`+where+` ORDER BY d.username COLLATE "C", d.id`+limit,
		append(args, limitArgs...)...)
	if err != nil {
		return store.Page[domain.Driver]{}, err
	}
	return store.NewPage(items, total, opts), nil
}

func (r *driversRepo) ListDriversByCar(ctx context.Context, carID string) ([]domain.Driver, error) {
	return r.query(ctx, `
		SELECT `+driverColumns+`
		FROM drivers d
		JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE cd.car_id = $1
		ORDER BY d.username COLLATE "C", d.id`, carID)
}

func (r *driversRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *driversRepo) CreateDriver(ctx context.Context, d domain.Driver) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO drivers (id, username, password_hash, license_number, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		d.ID, d.Username, d.PasswordHash, d.LicenseNumber, d.FirstName, d.LastName, timestamp(d.CreatedAt))
	return mapWriteErr(err)
}

func (r *driversRepo) UpdateDriverLicense(ctx context.Context, id, license string) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE drivers SET license_number = $1, updated_at = now() WHERE id = $2`, license, id))
}

func (r *driversRepo) UpdateDriverProfile(ctx context.Context, id, firstName, lastName string) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE drivers SET first_name = $1, last_name = $2, updated_at = now() WHERE id = $3`,
		firstName, lastName, id))
}

func (r *driversRepo) DeleteDriver(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id))
}

func (r *driversRepo) CountDrivers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers`).Scan(&n)
	return n, err
}
