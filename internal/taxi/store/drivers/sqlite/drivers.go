package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

type driversRepo struct {
	db dbtx
}

const driverColumns = `d.id, d.username, d.password_hash, d.license_number, d.first_name, d.last_name, d.created_at, d.updated_at`

func scanDriver(row interface{ Scan(...any) error }) (domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(&d.ID, &d.Username, &d.PasswordHash, &d.LicenseNumber,
		&d.FirstName, &d.LastName, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *driversRepo) GetDriverByID(ctx context.Context, id string) (domain.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = ?`, id)
}

func (r *driversRepo) GetDriverByUsername(ctx context.Context, username string) (domain.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.username = ?`, username)
}

func (r *driversRepo) getOne(ctx context.Context, query string, arg any) (domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.Driver{}, mapNotFound(err)
	}
	return d, nil
}

func (r *driversRepo) ListDrivers(ctx context.Context, opts store.ListOptions) (store.Page[domain.Driver], error) {
	opts = opts.Normalize()

	where, args := "", []any{}
	if opts.Search != "" {
		where = searchClause("d.username")
		args = append(args, likeArg(opts.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers d`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Driver]{}, err
	}

	limit, limitArgs := pageClause(opts)
	items, err := r.query(ctx,
		`SELECT `+driverColumns+` FROM drivers d`+where+` ORDER BY d.username, d.id`+limit,
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
		WHERE cd.car_id = ?
		ORDER BY d.username, d.id`, carID)
}

func (r *driversRepo) query(ctx context.Context, query string, args ...any) ([]domain.Driver, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	now := timestamp(d.CreatedAt)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drivers (id, username, password_hash, license_number, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Username, d.PasswordHash, d.LicenseNumber, d.FirstName, d.LastName, now, now)
	return mapWriteErr(err)
}

func (r *driversRepo) UpdateDriverLicense(ctx context.Context, id, license string) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE drivers SET license_number = ?, updated_at = ? WHERE id = ?`,
		license, time.Now().UTC(), id))
}

func (r *driversRepo) UpdateDriverProfile(ctx context.Context, id, firstName, lastName string) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE drivers SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, time.Now().UTC(), id))
}

func (r *driversRepo) DeleteDriver(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = ?`, id))
}

func (r *driversRepo) CountDrivers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers`).Scan(&n)
	return n, err
}
