package billableservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/billing/internal/platform/db"
)

// PaymentModeChecker reports whether a payment mode exists and is usable.
// Implemented by the paymentmode service.
type PaymentModeChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	services Repository
	modes    PaymentModeChecker
	pool     *pgxpool.Pool
}

func NewService(services Repository, modes PaymentModeChecker, pool *pgxpool.Pool) *Service {
	return &Service{services: services, modes: modes, pool: pool}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) Create(ctx context.Context, bs *BillableService) error {
	if bs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if bs.ShortName == "" {
		return fmt.Errorf("short_name is required")
	}
	if bs.ServiceStatus == "" {
		bs.ServiceStatus = StatusEnabled
	}
	if !validServiceStatuses[bs.ServiceStatus] {
		return fmt.Errorf("invalid service status: %s", bs.ServiceStatus)
	}
	if len(bs.Prices) == 0 {
		return fmt.Errorf("at least one price is required")
	}
	if err := s.validatePrices(ctx, bs.Prices); err != nil {
		return err
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.services.Create(ctx, bs); err != nil {
			return err
		}
		return s.services.ReplacePrices(ctx, bs.ID, bs.Prices)
	})
}

func (s *Service) validatePrices(ctx context.Context, prices []ServicePrice) error {
	for i := range prices {
		p := &prices[i]
		if p.Price < 0 {
			return fmt.Errorf("price %q cannot be negative", p.Name)
		}
		if p.PaymentModeID == uuid.Nil {
			return fmt.Errorf("price %q needs a payment mode", p.Name)
		}
		if s.modes != nil {
			ok, err := s.modes.Exists(ctx, p.PaymentModeID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unknown payment mode %s", p.PaymentModeID)
			}
		}
	}
	return nil
}

// Get loads a service with its prices.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*BillableService, error) {
	bs, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prices, err := s.services.GetPrices(ctx, id)
	if err != nil {
		return nil, err
	}
	bs.Prices = prices
	return bs, nil
}

// GetByName resolves a service by exact, case-insensitive name. Used by the
// auto-billing matcher.
func (s *Service) GetByName(ctx context.Context, name string) (*BillableService, error) {
	return s.services.GetByName(ctx, name)
}

// Update merges the partial payload onto the stored record. Zero-value
// fields keep their current value; a non-nil Prices slice replaces the full
// price list.
func (s *Service) Update(ctx context.Context, bs *BillableService) error {
	current, err := s.services.GetByID(ctx, bs.ID)
	if err != nil {
		return err
	}
	if bs.Name == "" {
		bs.Name = current.Name
	}
	if bs.ShortName == "" {
		bs.ShortName = current.ShortName
	}
	if bs.ServiceStatus == "" {
		bs.ServiceStatus = current.ServiceStatus
	}
	if !validServiceStatuses[bs.ServiceStatus] {
		return fmt.Errorf("invalid service status: %s", bs.ServiceStatus)
	}
	if bs.ServiceTypeID == nil {
		bs.ServiceTypeID = current.ServiceTypeID
	}
	if bs.ConceptID == nil {
		bs.ConceptID = current.ConceptID
	}
	if bs.Prices != nil {
		if len(bs.Prices) == 0 {
			return fmt.Errorf("at least one price is required")
		}
		if err := s.validatePrices(ctx, bs.Prices); err != nil {
			return err
		}
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.services.Update(ctx, bs); err != nil {
			return err
		}
		if bs.Prices != nil {
			return s.services.ReplacePrices(ctx, bs.ID, bs.Prices)
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, nameQuery, status string, limit, offset int) ([]*BillableService, int, error) {
	if status != "" && !validServiceStatuses[status] {
		return nil, 0, fmt.Errorf("invalid service status: %s", status)
	}
	services, total, err := s.services.List(ctx, nameQuery, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, bs := range services {
		prices, err := s.services.GetPrices(ctx, bs.ID)
		if err != nil {
			return nil, 0, err
		}
		bs.Prices = prices
	}
	return services, total, nil
}
