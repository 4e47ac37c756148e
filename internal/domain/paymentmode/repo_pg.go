package paymentmode

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

const pmCols = `id, name, description, sort_order, retired, created_at, updated_at`

func scanMode(row pgx.Row) (*PaymentMode, error) {
	var pm PaymentMode
	err := row.Scan(&pm.ID, &pm.Name, &pm.Description, &pm.SortOrder,
		&pm.Retired, &pm.CreatedAt, &pm.UpdatedAt)
	return &pm, err
}

func (r *repoPG) Create(ctx context.Context, pm *PaymentMode) error {
	pm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payment_mode (id, name, description, sort_order, retired)
		VALUES ($1,$2,$3,$4,$5)`,
		pm.ID, pm.Name, pm.Description, pm.SortOrder, pm.Retired)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*PaymentMode, error) {
	return scanMode(r.conn(ctx).QueryRow(ctx, `SELECT `+pmCols+` FROM payment_mode WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, pm *PaymentMode) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE payment_mode SET name=$2, description=$3, sort_order=$4, retired=$5, updated_at=NOW()
		WHERE id = $1`,
		pm.ID, pm.Name, pm.Description, pm.SortOrder, pm.Retired)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM payment_mode WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, includeRetired bool, limit, offset int) ([]*PaymentMode, int, error) {
	where := `WHERE TRUE`
	if !includeRetired {
		where = `WHERE retired = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM payment_mode `+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+pmCols+` FROM payment_mode `+where+` ORDER BY sort_order, name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var modes []*PaymentMode
	for rows.Next() {
		pm, err := scanMode(rows)
		if err != nil {
			return nil, 0, err
		}
		modes = append(modes, pm)
	}
	return modes, total, rows.Err()
}

func (r *repoPG) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var inUse bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM bill_payment WHERE instance_type_id = $1 AND voided = FALSE)
			OR EXISTS (SELECT 1 FROM service_price WHERE payment_mode_id = $1)`, id).Scan(&inUse)
	return inUse, err
}
