package bill

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows List to a patient, a status, or a cash point. Zero-value
// fields are ignored.
type ListFilter struct {
	PatientID   uuid.UUID
	Status      string
	CashPointID uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*Bill, error)
	Update(ctx context.Context, b *Bill) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Bill, int, error)
	NextReceiptNumber(ctx context.Context) (string, error)
	// Line items
	AddLineItem(ctx context.Context, li *LineItem) error
	GetLineItems(ctx context.Context, billID uuid.UUID) ([]LineItem, error)
	UpdateLineItem(ctx context.Context, li *LineItem) error
	GetLineItem(ctx context.Context, id uuid.UUID) (*LineItem, error)
	// Flips every line item of the bill whose payment status is `from` to `to`.
	SetLineItemsStatus(ctx context.Context, billID uuid.UUID, from, to string) error
	// Payments
	AddPayment(ctx context.Context, p *Payment) error
	GetPayments(ctx context.Context, billID uuid.UUID) ([]Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	VoidPayment(ctx context.Context, id uuid.UUID) error
}
