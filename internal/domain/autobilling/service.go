package autobilling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hmis/billing/internal/domain/bill"
)

// BillCreator is the slice of the bill service the sweep needs.
type BillCreator interface {
	CreateBill(ctx context.Context, b *bill.Bill) error
}

// SweepConfig fixes where draft bills raised by the sweep are booked.
type SweepConfig struct {
	Lookback    time.Duration
	CashPointID uuid.UUID
	CashierID   uuid.UUID
}

// Service ingests billing events and periodically converts unbilled ones
// into draft bills, one per patient per sweep.
type Service struct {
	events  EventRepository
	matcher *Matcher
	bills   BillCreator
	cfg     SweepConfig
	log     zerolog.Logger
}

func NewService(events EventRepository, matcher *Matcher, bills BillCreator, cfg SweepConfig, log zerolog.Logger) *Service {
	return &Service{events: events, matcher: matcher, bills: bills, cfg: cfg, log: log}
}

func (s *Service) RecordEvent(ctx context.Context, ev *BillingEvent) error {
	if !validEventTypes[ev.Type] {
		return fmt.Errorf("invalid event type: %s", ev.Type)
	}
	if ev.ConceptName == "" {
		return fmt.Errorf("concept_name is required")
	}
	if ev.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if ev.EventDate.IsZero() {
		ev.EventDate = time.Now()
	}
	return s.events.Create(ctx, ev)
}

// SweepResult summarises one sweep run.
type SweepResult struct {
	EventsSeen   int `json:"events_seen"`
	Matched      int `json:"matched"`
	BillsCreated int `json:"bills_created"`
}

// Sweep matches unbilled events within the lookback window and raises one
// PENDING bill per patient with the matched items. Unmatched events stay
// unbilled and are retried on the next run.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	since := time.Now().Add(-s.cfg.Lookback)
	events, err := s.events.ListUnbilled(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list unbilled events: %w", err)
	}

	result := &SweepResult{EventsSeen: len(events)}
	byPatient := make(map[uuid.UUID][]ProposedBillItem)
	var order []uuid.UUID
	for _, ev := range events {
		item, err := s.matcher.Match(ctx, ev)
		if err != nil {
			return nil, fmt.Errorf("match event %s: %w", ev.ID, err)
		}
		if item == nil {
			continue
		}
		if _, seen := byPatient[ev.PatientID]; !seen {
			order = append(order, ev.PatientID)
		}
		byPatient[ev.PatientID] = append(byPatient[ev.PatientID], *item)
		result.Matched++
	}

	for _, patientID := range order {
		items := byPatient[patientID]
		if err := s.raiseBill(ctx, patientID, items); err != nil {
			s.log.Error().Err(err).Str("patient_id", patientID.String()).
				Msg("auto-billing: failed to raise bill")
			continue
		}
		result.BillsCreated++
	}

	s.log.Info().
		Int("events_seen", result.EventsSeen).
		Int("matched", result.Matched).
		Int("bills_created", result.BillsCreated).
		Msg("auto-billing sweep complete")
	return result, nil
}

func (s *Service) raiseBill(ctx context.Context, patientID uuid.UUID, items []ProposedBillItem) error {
	b := bill.Bill{
		PatientID:   patientID,
		CashierID:   s.cfg.CashierID,
		CashPointID: s.cfg.CashPointID,
		Status:      bill.StatusPending,
	}
	eventIDs := make([]uuid.UUID, 0, len(items))
	for i, item := range items {
		name := item.Name
		serviceID := item.ServiceID
		qty := item.Quantity
		b.LineItems = append(b.LineItems, bill.LineItem{
			BillableService: &name,
			ServiceID:       &serviceID,
			Price:           item.Price,
			Quantity:        &qty,
			ItemOrder:       i,
		})
		eventIDs = append(eventIDs, item.Event.ID)
	}
	if err := s.bills.CreateBill(ctx, &b); err != nil {
		return err
	}
	return s.events.MarkBilled(ctx, eventIDs)
}
