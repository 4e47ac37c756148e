package cashpoint

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cp *CashPoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*CashPoint, error)
	Update(ctx context.Context, cp *CashPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeRetired bool, limit, offset int) ([]*CashPoint, int, error)
	// InUse reports whether any bill references the cash point.
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}
