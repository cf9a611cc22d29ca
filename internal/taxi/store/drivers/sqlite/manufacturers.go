package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

type manufacturersRepo struct {
	db dbtx
}

const manufacturerColumns = `id, name, country, created_at, updated_at`

func scanManufacturer(row interface{ Scan(...any) error }) (domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := row.Scan(&m.ID, &m.Name, &m.Country, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *manufacturersRepo) GetManufacturerByID(ctx context.Context, id string) (domain.Manufacturer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+manufacturerColumns+` FROM manufacturers WHERE id = ?`, id)
	m, err := scanManufacturer(row)
	if err != nil {
		return domain.Manufacturer{}, mapNotFound(err)
	}
	return m, nil
}

func (r *manufacturersRepo) ListManufacturers(ctx context.Context, opts store.ListOptions) (store.Page[domain.Manufacturer], error) {
	opts = opts.Normalize()

	where, args := "", []any{}
	if opts.Search != "" {
		where = searchClause("name")
		args = append(args, likeArg(opts.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manufacturers`+where, args...).Scan(&total); err != nil {
		return store.Page[domain.Manufacturer]{}, err
	}

	limit, limitArgs := pageClause(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+manufacturerColumns+` FROM manufacturers`+where+` ORDER BY name, id`+limit,
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
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO manufacturers (id, name, country, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Country, now, now)
	return mapWriteErr(err)
}

func (r *manufacturersRepo) UpdateManufacturer(ctx context.Context, m domain.Manufacturer) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE manufacturers SET name = ?, country = ?, updated_at = ? WHERE id = ?`,
		m.Name, m.Country, time.Now().UTC(), m.ID))
}

func (r *manufacturersRepo) DeleteManufacturer(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = ?`, id))
}

func (r *manufacturersRepo) CountManufacturers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manufacturers`).Scan(&n)
	return n, err
}

// timestamp returns t in UTC, or now when t is zero.
func timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
