package billableservice

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *BillableService) error
	GetByID(ctx context.Context, id uuid.UUID) (*BillableService, error)
	GetByName(ctx context.Context, name string) (*BillableService, error)
	Update(ctx context.Context, s *BillableService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, nameQuery, status string, limit, offset int) ([]*BillableService, int, error)
	// Prices
	ReplacePrices(ctx context.Context, serviceID uuid.UUID, prices []ServicePrice) error
	GetPrices(ctx context.Context, serviceID uuid.UUID) ([]ServicePrice, error)
}
