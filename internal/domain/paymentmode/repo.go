package paymentmode

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, pm *PaymentMode) error
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentMode, error)
	Update(ctx context.Context, pm *PaymentMode) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeRetired bool, limit, offset int) ([]*PaymentMode, int, error)
	// InUse reports whether any non-voided payment or any service price
	// references the mode.
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}
