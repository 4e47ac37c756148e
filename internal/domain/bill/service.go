package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/billing/internal/platform/db"
)

// Service owns bill lifecycle rules: receipt numbering, status transitions,
// payment settlement and waivers. The pool is only used to wrap multi-step
// writes in a transaction; it may be nil in tests, in which case steps run
// unwrapped against the repository.
type Service struct {
	bills        Repository
	pool         *pgxpool.Pool
	waiverModeID uuid.UUID
	opts         MapOptions
}

func NewService(bills Repository, pool *pgxpool.Pool, waiverModeID uuid.UUID, opts MapOptions) *Service {
	return &Service{bills: bills, pool: pool, waiverModeID: waiverModeID, opts: opts}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) CreateBill(ctx context.Context, b *Bill) error {
	if b.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if b.CashPointID == uuid.Nil {
		return fmt.Errorf("cash_point_id is required")
	}
	if b.CashierID == uuid.Nil {
		return fmt.Errorf("cashier_id is required")
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if !validStatuses[b.Status] {
		return fmt.Errorf("invalid bill status: %s", b.Status)
	}
	for i := range b.LineItems {
		if err := validateLineItem(&b.LineItems[i]); err != nil {
			return err
		}
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		if b.ReceiptNumber == "" {
			rn, err := s.bills.NextReceiptNumber(ctx)
			if err != nil {
				return fmt.Errorf("issue receipt number: %w", err)
			}
			b.ReceiptNumber = rn
		}
		if err := s.bills.Create(ctx, b); err != nil {
			return err
		}
		for i := range b.LineItems {
			li := &b.LineItems[i]
			li.BillID = b.ID
			if li.ItemOrder == 0 {
				li.ItemOrder = i
			}
			if err := s.bills.AddLineItem(ctx, li); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateLineItem(li *LineItem) error {
	if li.Item == nil && li.BillableService == nil && li.ServiceID == nil {
		return fmt.Errorf("line item needs an item or a billable service")
	}
	if li.Quantity != nil && *li.Quantity < 0 {
		return fmt.Errorf("line item quantity cannot be negative")
	}
	if li.PaymentStatus == "" {
		li.PaymentStatus = StatusPending
	}
	if li.PaymentStatus != StatusPending && li.PaymentStatus != StatusPaid {
		return fmt.Errorf("invalid line item payment status: %s", li.PaymentStatus)
	}
	return nil
}

// GetBill loads a bill with its line items and payments.
func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetMappedBill returns the receipt-ready projection of the bill.
func (s *Service) GetMappedBill(ctx context.Context, id uuid.UUID) (*MappedBill, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	m := MapBill(b, s.opts)
	return &m, nil
}

// ListMappedBills lists bills matching the filter, newest first, each
// projected into its view-model.
func (s *Service) ListMappedBills(ctx context.Context, f ListFilter, limit, offset int) ([]MappedBill, int, error) {
	bills, total, err := s.bills.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	mapped := make([]MappedBill, 0, len(bills))
	for _, b := range bills {
		if err := s.hydrate(ctx, b); err != nil {
			return nil, 0, err
		}
		mapped = append(mapped, MapBill(b, s.opts))
	}
	return mapped, total, nil
}

func (s *Service) hydrate(ctx context.Context, b *Bill) error {
	items, err := s.bills.GetLineItems(ctx, b.ID)
	if err != nil {
		return err
	}
	payments, err := s.bills.GetPayments(ctx, b.ID)
	if err != nil {
		return err
	}
	b.LineItems = items
	b.Payments = payments
	return nil
}

func (s *Service) UpdateBill(ctx context.Context, b *Bill) error {
	if b.Status != "" && !validStatuses[b.Status] {
		return fmt.Errorf("invalid bill status: %s", b.Status)
	}
	return s.bills.Update(ctx, b)
}

// PostBill commits a pending bill so payments can be taken against it.
func (s *Service) PostBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, fmt.Errorf("only a %s bill can be posted, got %s", StatusPending, b.Status)
	}
	b.Status = StatusPosted
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) AddLineItem(ctx context.Context, billID uuid.UUID, li *LineItem) error {
	if err := validateLineItem(li); err != nil {
		return err
	}
	if _, err := s.bills.GetByID(ctx, billID); err != nil {
		return fmt.Errorf("bill not found: %w", err)
	}
	li.BillID = billID
	return s.bills.AddLineItem(ctx, li)
}

func (s *Service) UpdateLineItem(ctx context.Context, li *LineItem) error {
	if err := validateLineItem(li); err != nil {
		return err
	}
	return s.bills.UpdateLineItem(ctx, li)
}

// VoidLineItem soft-deletes a line item. The item stays on record but drops
// out of totals, status derivation and the receipt summary.
func (s *Service) VoidLineItem(ctx context.Context, id uuid.UUID, reason string) error {
	li, err := s.bills.GetLineItem(ctx, id)
	if err != nil {
		return err
	}
	li.Voided = true
	if reason != "" {
		li.VoidReason = &reason
	}
	return s.bills.UpdateLineItem(ctx, li)
}

// AddPayment records a tender against the bill. When the applied amounts
// cover the bill total, all pending line items flip to PAID and the bill
// itself settles, in the same transaction as the payment row.
func (s *Service) AddPayment(ctx context.Context, billID uuid.UUID, p *Payment) error {
	if p.Amount == nil || *p.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	if p.AmountTendered == nil {
		p.AmountTendered = p.Amount
	}
	if *p.AmountTendered < *p.Amount {
		return fmt.Errorf("amount tendered cannot be less than the applied amount")
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		b, err := s.bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("bill not found: %w", err)
		}
		if b.Status == StatusPending {
			return fmt.Errorf("bill must be posted before taking payments")
		}
		p.BillID = billID
		if err := s.bills.AddPayment(ctx, p); err != nil {
			return err
		}
		return s.settle(ctx, b)
	})
}

// VoidPayment reverses a payment and reopens the bill if the remaining
// tenders no longer cover the total.
func (s *Service) VoidPayment(ctx context.Context, paymentID uuid.UUID) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		p, err := s.bills.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := s.bills.VoidPayment(ctx, p.ID); err != nil {
			return err
		}
		b, err := s.bills.GetByID(ctx, p.BillID)
		if err != nil {
			return err
		}
		if err := s.hydrate(ctx, b); err != nil {
			return err
		}
		if b.Status == StatusPaid && Balance(b.LineItems, b.Payments) > 0 {
			if err := s.bills.SetLineItemsStatus(ctx, b.ID, StatusPaid, StatusPending); err != nil {
				return err
			}
			b.Status = StatusPosted
			return s.bills.Update(ctx, b)
		}
		return nil
	})
}

// WaiveBill writes off the outstanding balance by recording a payment against
// the configured waiver payment mode and exempting the bill.
func (s *Service) WaiveBill(ctx context.Context, billID uuid.UUID, reason string) (*Payment, error) {
	if s.waiverModeID == uuid.Nil {
		return nil, fmt.Errorf("waiver payment mode is not configured")
	}

	var waiver *Payment
	err := s.inTx(ctx, func(ctx context.Context) error {
		b, err := s.bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("bill not found: %w", err)
		}
		if err := s.hydrate(ctx, b); err != nil {
			return err
		}
		balance := Balance(b.LineItems, b.Payments)
		if balance <= 0 {
			return fmt.Errorf("bill has no outstanding balance to waive")
		}

		modeID := s.waiverModeID
		modeName := "Waiver"
		waiver = &Payment{
			BillID:           billID,
			InstanceTypeID:   &modeID,
			InstanceTypeName: &modeName,
			Amount:           &balance,
			AmountTendered:   &balance,
		}
		if err := s.bills.AddPayment(ctx, waiver); err != nil {
			return err
		}
		if err := s.bills.SetLineItemsStatus(ctx, billID, StatusPending, StatusPaid); err != nil {
			return err
		}
		b.Status = StatusExempted
		if reason != "" {
			b.AdjustmentReason = &reason
		}
		return s.bills.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return waiver, nil
}

// settle re-reads the bill's items and payments and closes it when the
// applied payments cover the total.
func (s *Service) settle(ctx context.Context, b *Bill) error {
	if err := s.hydrate(ctx, b); err != nil {
		return err
	}
	if TotalAmount(b.LineItems) > TotalTendered(b.Payments) {
		return nil
	}
	if err := s.bills.SetLineItemsStatus(ctx, b.ID, StatusPending, StatusPaid); err != nil {
		return err
	}
	if b.Status != StatusPaid {
		b.Status = StatusPaid
		return s.bills.Update(ctx, b)
	}
	return nil
}
