package bill

import (
	"time"

	"github.com/google/uuid"
)

// Bill statuses. A bill starts PENDING, may be POSTED by a cashier with the
// post privilege, and becomes PAID once payments cover the line items.
const (
	StatusPending  = "PENDING"
	StatusPosted   = "POSTED"
	StatusPaid     = "PAID"
	StatusAdjusted = "ADJUSTED"
	StatusExempted = "EXEMPTED"
)

// Bill maps to the bill table. PatientDisplay carries the legacy
// "identifier - name" string some upstream feeds still send; the structured
// identifier/name columns are preferred when populated.
type Bill struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	ReceiptNumber     string     `db:"receipt_number" json:"receipt_number"`
	Status            string     `db:"status" json:"status"`
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	PatientDisplay    *string    `db:"patient_display" json:"patient_display,omitempty"`
	CashierID         uuid.UUID  `db:"cashier_id" json:"cashier_id"`
	CashierName       *string    `db:"cashier_name" json:"cashier_name,omitempty"`
	CashPointID       uuid.UUID  `db:"cash_point_id" json:"cash_point_id"`
	CashPointName     *string    `db:"cash_point_name" json:"cash_point_name,omitempty"`
	CashPointLocation *string    `db:"cash_point_location" json:"cash_point_location,omitempty"`
	AdjustmentReason  *string    `db:"adjustment_reason" json:"adjustment_reason,omitempty"`
	Voided            bool       `db:"voided" json:"voided"`
	DateCreated       *time.Time `db:"date_created" json:"date_created,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`

	LineItems []LineItem `db:"-" json:"line_items"`
	Payments  []Payment  `db:"-" json:"payments"`
}

// LineItem maps to the bill_line_item table. Price and Quantity are pointers:
// historical records from the paper-ledger import are missing one or both, and
// such items are excluded from totals rather than treated as zero.
type LineItem struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	BillID          uuid.UUID  `db:"bill_id" json:"bill_id"`
	Item            *string    `db:"item" json:"item,omitempty"`
	ServiceID       *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	BillableService *string    `db:"billable_service" json:"billable_service,omitempty"`
	Price           *float64   `db:"price" json:"price,omitempty"`
	Quantity        *float64   `db:"quantity" json:"quantity,omitempty"`
	PaymentStatus   string     `db:"payment_status" json:"payment_status"`
	ItemOrder       int        `db:"item_order" json:"item_order"`
	Voided          bool       `db:"voided" json:"voided"`
	VoidReason      *string    `db:"void_reason" json:"void_reason,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Payment maps to the bill_payment table. Amount is the portion applied to
// the bill; AmountTendered is what the patient handed over (change due when it
// exceeds Amount).
type Payment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	BillID           uuid.UUID  `db:"bill_id" json:"bill_id"`
	InstanceTypeID   *uuid.UUID `db:"instance_type_id" json:"instance_type_id,omitempty"`
	InstanceTypeName *string    `db:"instance_type_name" json:"instance_type_name,omitempty"`
	Amount           *float64   `db:"amount" json:"amount,omitempty"`
	AmountTendered   *float64   `db:"amount_tendered" json:"amount_tendered,omitempty"`
	DateCreated      *time.Time `db:"date_created" json:"date_created,omitempty"`
	Voided           bool       `db:"voided" json:"voided"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

var validStatuses = map[string]bool{
	StatusPending: true, StatusPosted: true, StatusPaid: true,
	StatusAdjusted: true, StatusExempted: true,
}
