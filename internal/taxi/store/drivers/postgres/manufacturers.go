package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/jackc/pgx/v5"
)

type manufacturersRepo struct {
	db dbtx
}

const manufacturerColumns = `id, name, country, created_at, updated_at`

func scanManufacturer(row pgx.Row) (domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := row.Scan(&m.ID, &m.Name, &m.Country, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *manufacturersRepo) GetManufacturerByID(ctx context.Context, id string) (domain.Manufacturer, error) {
	m, err := scanManufacturer(r.db.QueryRow(ctx,
		`SELECT `+manufacturerColumns+` FROM manufacturers WHERE id = $1`, id))
	if err != nil {
		return domain.Manufacturer{}, mapNotFound(err)
	}
	return m, nil
}

func (r *manufacturersRepo) ListManufacturers(ctx context.Context, opts store.ListOptions) (store.Page[domain.Manufacturer], error) {
	opts = opts.Normalize()
	where, args, limit, limitArgs := filter("name", opts)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM manufacturers`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Manufacturer]{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+manufacturerColumns+` FROM manufacturers`+where+` ORDER BY name COLLATE "C", id`+limit,
		append(args, limitArgs...)...)
	if err != nil {
		return store.Page[domain.Manufacturer]{}, err
	}
	defer rows.Close()

	var items []domain.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return store.Page[domain.Manufacturer]{}, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return store.Page[domain.Manufacturer]{}, err
	}
	return store.NewPage(items, total, opts), nil
}

func (r *manufacturersRepo) CreateManufacturer(ctx context.Context, m domain.Manufacturer) error {
	now := timestamp(m.CreatedAt)
	_, err := r.db.Exec(ctx,
		`INSERT INTO manufacturers (id, name, country, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
		m.ID, m.Name, m.Country, now)
	return mapWriteErr(err)
}

func (r *manufacturersRepo) UpdateManufacturer(ctx context.Context, m domain.Manufacturer) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE manufacturers SET name = $1, country = $2, updated_at = now() WHERE id = $3`,
		m.Name, m.Country, m.ID))
}

func (r *manufacturersRepo) DeleteManufacturer(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id))
}

func (r *manufacturersRepo) CountManufacturers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM manufacturers`).Scan(&n)
	return n, err
}

func timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
