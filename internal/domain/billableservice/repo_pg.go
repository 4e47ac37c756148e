package billableservice

import (
	"context"
	"fmt"

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

const svcCols = `id, name, short_name, service_status, service_type_id, concept_id, created_at, updated_at`

func scanService(row pgx.Row) (*BillableService, error) {
	var s BillableService
	err := row.Scan(&s.ID, &s.Name, &s.ShortName, &s.ServiceStatus,
		&s.ServiceTypeID, &s.ConceptID, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *BillableService) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billable_service (id, name, short_name, service_status, service_type_id, concept_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Name, s.ShortName, s.ServiceStatus, s.ServiceTypeID, s.ConceptID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*BillableService, error) {
	return scanService(r.conn(ctx).QueryRow(ctx, `SELECT `+svcCols+` FROM billable_service WHERE id = $1`, id))
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*BillableService, error) {
	return scanService(r.conn(ctx).QueryRow(ctx,
		`SELECT `+svcCols+` FROM billable_service WHERE LOWER(name) = LOWER($1)`, name))
}

func (r *repoPG) Update(ctx context.Context, s *BillableService) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE billable_service SET name=$2, short_name=$3, service_status=$4,
			service_type_id=$5, concept_id=$6, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.ShortName, s.ServiceStatus, s.ServiceTypeID, s.ConceptID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM billable_service WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, nameQuery, status string, limit, offset int) ([]*BillableService, int, error) {
	where := `WHERE TRUE`
	args := []interface{}{}
	idx := 1
	if nameQuery != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+nameQuery+"%")
		idx++
	}
	if status != "" {
		where += fmt.Sprintf(` AND service_status = $%d`, idx)
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM billable_service `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`SELECT %s FROM billable_service %s ORDER BY name LIMIT $%d OFFSET $%d`,
		svcCols, where, idx, idx+1)
	rows, err := r.conn(ctx).Query(ctx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var services []*BillableService
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, s)
	}
	return services, total, rows.Err()
}

const priceCols = `sp.id, sp.service_id, sp.name, sp.price, sp.payment_mode_id, pm.name, sp.created_at`

func (r *repoPG) ReplacePrices(ctx context.Context, serviceID uuid.UUID, prices []ServicePrice) error {
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM service_price WHERE service_id = $1`, serviceID); err != nil {
		return err
	}
	for i := range prices {
		p := &prices[i]
		p.ID = uuid.New()
		p.ServiceID = serviceID
		if _, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO service_price (id, service_id, name, price, payment_mode_id)
			VALUES ($1,$2,$3,$4,$5)`,
			p.ID, p.ServiceID, p.Name, p.Price, p.PaymentModeID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetPrices(ctx context.Context, serviceID uuid.UUID) ([]ServicePrice, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+priceCols+` FROM service_price sp
		JOIN payment_mode pm ON pm.id = sp.payment_mode_id
		WHERE sp.service_id = $1 ORDER BY sp.name`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var prices []ServicePrice
	for rows.Next() {
		var p ServicePrice
		if err := rows.Scan(&p.ID, &p.ServiceID, &p.Name, &p.Price,
			&p.PaymentModeID, &p.PaymentModeName, &p.CreatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
