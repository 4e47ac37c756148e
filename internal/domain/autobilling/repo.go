package autobilling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, ev *BillingEvent) error
	ListUnbilled(ctx context.Context, since time.Time) ([]BillingEvent, error)
	MarkBilled(ctx context.Context, ids []uuid.UUID) error
}
