package paymentmode

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	modes Repository
}

func NewService(modes Repository) *Service {
	return &Service{modes: modes}
}

func (s *Service) Create(ctx context.Context, pm *PaymentMode) error {
	if pm.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.modes.Create(ctx, pm)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PaymentMode, error) {
	return s.modes.GetByID(ctx, id)
}

// Exists reports whether a non-retired mode with the given id is defined.
// Satisfies billableservice.PaymentModeChecker.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	pm, err := s.modes.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return !pm.Retired, nil
}

func (s *Service) Update(ctx context.Context, pm *PaymentMode) error {
	if pm.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.modes.Update(ctx, pm)
}

// Delete refuses while the mode is referenced by live payments or service
// prices. Retire instead to take a mode out of circulation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.modes.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("payment mode is in use; retire it instead")
	}
	return s.modes.Delete(ctx, id)
}

func (s *Service) Retire(ctx context.Context, id uuid.UUID) error {
	pm, err := s.modes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	pm.Retired = true
	return s.modes.Update(ctx, pm)
}

func (s *Service) List(ctx context.Context, includeRetired bool, limit, offset int) ([]*PaymentMode, int, error) {
	return s.modes.List(ctx, includeRetired, limit, offset)
}
