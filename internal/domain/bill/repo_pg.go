package bill

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

const billCols = `id, receipt_number, status, patient_id, patient_display,
	cashier_id, cashier_name, cash_point_id, cash_point_name, cash_point_location,
	adjustment_reason, voided, date_created, created_at, updated_at`

func (r *repoPG) scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.ReceiptNumber, &b.Status, &b.PatientID, &b.PatientDisplay,
		&b.CashierID, &b.CashierName, &b.CashPointID, &b.CashPointName, &b.CashPointLocation,
		&b.AdjustmentReason, &b.Voided, &b.DateCreated, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) Create(ctx context.Context, b *Bill) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill (id, receipt_number, status, patient_id, patient_display,
			cashier_id, cashier_name, cash_point_id, cash_point_name, cash_point_location,
			adjustment_reason, voided, date_created)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,COALESCE($13, NOW()))`,
		b.ID, b.ReceiptNumber, b.Status, b.PatientID, b.PatientDisplay,
		b.CashierID, b.CashierName, b.CashPointID, b.CashPointName, b.CashPointLocation,
		b.AdjustmentReason, b.Voided, b.DateCreated)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return r.scanBill(r.conn(ctx).QueryRow(ctx, `SELECT `+billCols+` FROM bill WHERE id = $1`, id))
}

func (r *repoPG) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*Bill, error) {
	return r.scanBill(r.conn(ctx).QueryRow(ctx, `SELECT `+billCols+` FROM bill WHERE receipt_number = $1`, receiptNumber))
}

func (r *repoPG) Update(ctx context.Context, b *Bill) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bill SET status=$2, patient_display=$3, cashier_name=$4,
			cash_point_name=$5, cash_point_location=$6, adjustment_reason=$7,
			voided=$8, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Status, b.PatientDisplay, b.CashierName,
		b.CashPointName, b.CashPointLocation, b.AdjustmentReason, b.Voided)
	return err
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Bill, int, error) {
	where := `WHERE voided = FALSE`
	args := []interface{}{}
	idx := 1
	if f.PatientID != uuid.Nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, f.PatientID)
		idx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.CashPointID != uuid.Nil {
		where += fmt.Sprintf(` AND cash_point_id = $%d`, idx)
		args = append(args, f.CashPointID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bill `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`SELECT %s FROM bill %s ORDER BY date_created DESC LIMIT $%d OFFSET $%d`,
		billCols, where, idx, idx+1)
	rows, err := r.conn(ctx).Query(ctx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var bills []*Bill
	for rows.Next() {
		b, err := r.scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	return bills, total, rows.Err()
}

func (r *repoPG) NextReceiptNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('bill_receipt_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("RCPT-%06d", n), nil
}

// -- Line items --

const lineItemCols = `id, bill_id, item, service_id, billable_service, price, quantity,
	payment_status, item_order, voided, void_reason, created_at`

func scanLineItem(row pgx.Row) (*LineItem, error) {
	var li LineItem
	err := row.Scan(&li.ID, &li.BillID, &li.Item, &li.ServiceID, &li.BillableService,
		&li.Price, &li.Quantity, &li.PaymentStatus, &li.ItemOrder,
		&li.Voided, &li.VoidReason, &li.CreatedAt)
	return &li, err
}

func (r *repoPG) AddLineItem(ctx context.Context, li *LineItem) error {
	li.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill_line_item (id, bill_id, item, service_id, billable_service,
			price, quantity, payment_status, item_order, voided, void_reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		li.ID, li.BillID, li.Item, li.ServiceID, li.BillableService,
		li.Price, li.Quantity, li.PaymentStatus, li.ItemOrder, li.Voided, li.VoidReason)
	return err
}

func (r *repoPG) GetLineItems(ctx context.Context, billID uuid.UUID) ([]LineItem, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+lineItemCols+` FROM bill_line_item WHERE bill_id = $1 ORDER BY item_order, created_at`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *li)
	}
	return items, rows.Err()
}

func (r *repoPG) GetLineItem(ctx context.Context, id uuid.UUID) (*LineItem, error) {
	return scanLineItem(r.conn(ctx).QueryRow(ctx,
		`SELECT `+lineItemCols+` FROM bill_line_item WHERE id = $1`, id))
}

func (r *repoPG) UpdateLineItem(ctx context.Context, li *LineItem) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bill_line_item SET item=$2, billable_service=$3, price=$4, quantity=$5,
			payment_status=$6, item_order=$7, voided=$8, void_reason=$9
		WHERE id = $1`,
		li.ID, li.Item, li.BillableService, li.Price, li.Quantity,
		li.PaymentStatus, li.ItemOrder, li.Voided, li.VoidReason)
	return err
}

func (r *repoPG) SetLineItemsStatus(ctx context.Context, billID uuid.UUID, from, to string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bill_line_item SET payment_status = $3
		WHERE bill_id = $1 AND payment_status = $2 AND voided = FALSE`,
		billID, from, to)
	return err
}

// -- Payments --

const paymentCols = `id, bill_id, instance_type_id, instance_type_name,
	amount, amount_tendered, date_created, voided, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.BillID, &p.InstanceTypeID, &p.InstanceTypeName,
		&p.Amount, &p.AmountTendered, &p.DateCreated, &p.Voided, &p.CreatedAt)
	return &p, err
}

func (r *repoPG) AddPayment(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill_payment (id, bill_id, instance_type_id, instance_type_name,
			amount, amount_tendered, date_created, voided)
		VALUES ($1,$2,$3,$4,$5,$6,COALESCE($7, NOW()),$8)`,
		p.ID, p.BillID, p.InstanceTypeID, p.InstanceTypeName,
		p.Amount, p.AmountTendered, p.DateCreated, p.Voided)
	return err
}

func (r *repoPG) GetPayments(ctx context.Context, billID uuid.UUID) ([]Payment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+paymentCols+` FROM bill_payment WHERE bill_id = $1 ORDER BY date_created`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *repoPG) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return scanPayment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+paymentCols+` FROM bill_payment WHERE id = $1`, id))
}

func (r *repoPG) VoidPayment(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE bill_payment SET voided = TRUE WHERE id = $1`, id)
	return err
}
