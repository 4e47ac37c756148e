package autobilling

import (
	"context"
	"time"

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

type eventRepoPG struct{ pool *pgxpool.Pool }

func NewEventRepoPG(pool *pgxpool.Pool) EventRepository { return &eventRepoPG{pool: pool} }

func (r *eventRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *eventRepoPG) Create(ctx context.Context, ev *BillingEvent) error {
	ev.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing_event (id, event_type, concept_name, patient_id, event_date, billed)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		ev.ID, ev.Type, ev.ConceptName, ev.PatientID, ev.EventDate, ev.Billed)
	return err
}

func (r *eventRepoPG) ListUnbilled(ctx context.Context, since time.Time) ([]BillingEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, event_type, concept_name, patient_id, event_date, billed, created_at
		FROM billing_event
		WHERE billed = FALSE AND event_date >= $1
		ORDER BY patient_id, event_date`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []BillingEvent
	for rows.Next() {
		var ev BillingEvent
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.ConceptName, &ev.PatientID,
			&ev.EventDate, &ev.Billed, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventRepoPG) MarkBilled(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE billing_event SET billed = TRUE WHERE id = ANY($1)`, ids)
	return err
}
