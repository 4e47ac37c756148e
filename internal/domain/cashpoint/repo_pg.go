package cashpoint

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/billing/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cpCols = `id, name, description, location_id, location_name, retired, created_at, updated_at`

func scanCashPoint(row pgx.Row) (*CashPoint, error) {
	var cp CashPoint
	err := row.Scan(&cp.ID, &cp.Name, &cp.Description, &cp.LocationID, &cp.LocationName,
		&cp.Retired, &cp.CreatedAt, &cp.UpdatedAt)
	return &cp, err
}

func (r *repoPG) Create(ctx context.Context, cp *CashPoint) error {
	cp.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO cash_point (id, name, description, location_id, location_name, retired)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		cp.ID, cp.Name, cp.Description, cp.LocationID, cp.LocationName, cp.Retired)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*CashPoint, error) {
	return scanCashPoint(r.conn(ctx).QueryRow(ctx, `SELECT `+cpCols+` FROM cash_point WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, cp *CashPoint) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE cash_point SET name=$2, description=$3, location_id=$4, location_name=$5,
			retired=$6, updated_at=NOW()
		WHERE id = $1`,
		cp.ID, cp.Name, cp.Description, cp.LocationID, cp.LocationName, cp.Retired)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM cash_point WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, includeRetired bool, limit, offset int) ([]*CashPoint, int, error) {
	where := `WHERE TRUE`
	if !includeRetired {
		where = `WHERE retired = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM cash_point `+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cpCols+` FROM cash_point `+where+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var points []*CashPoint
	for rows.Next() {
		cp, err := scanCashPoint(rows)
		if err != nil {
			return nil, 0, err
		}
		points = append(points, cp)
	}
	return points, total, rows.Err()
}

func (r *repoPG) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var inUse bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bill WHERE cash_point_id = $1)`, id).Scan(&inUse)
	return inUse, err
}
