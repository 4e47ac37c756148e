package cashpoint

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	points Repository
}

func NewService(points Repository) *Service {
	return &Service{points: points}
}

func (s *Service) Create(ctx context.Context, cp *CashPoint) error {
	if cp.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.points.Create(ctx, cp)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CashPoint, error) {
	return s.points.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, cp *CashPoint) error {
	if cp.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.points.Update(ctx, cp)
}

// Delete removes a cash point outright when nothing references it, and
// retires it otherwise so historical bills keep a valid reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.points.InUse(ctx, id)
	if err != nil {
		return err
	}
	if !inUse {
		return s.points.Delete(ctx, id)
	}
	cp, err := s.points.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cp.Retired = true
	return s.points.Update(ctx, cp)
}

func (s *Service) Retire(ctx context.Context, id uuid.UUID) error {
	cp, err := s.points.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cp.Retired = true
	return s.points.Update(ctx, cp)
}

func (s *Service) List(ctx context.Context, includeRetired bool, limit, offset int) ([]*CashPoint, int, error) {
	return s.points.List(ctx, includeRetired, limit, offset)
}
