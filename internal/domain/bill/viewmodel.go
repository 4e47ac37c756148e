package bill

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hmis/billing/internal/platform/currency"
	"github.com/hmis/billing/internal/platform/dates"
)

// serviceSeparator joins line-item service names on the receipt summary line.
const serviceSeparator = "  "

// MappedBill is the receipt-ready projection of a Bill. It is recomputed on
// every read and never persisted.
type MappedBill struct {
	ID                 uuid.UUID  `json:"uuid"`
	PatientID          uuid.UUID  `json:"patient_uuid"`
	Identifier         *string    `json:"identifier,omitempty"`
	PatientName        *string    `json:"patient_name,omitempty"`
	Status             string     `json:"status"`
	ReceiptNumber      string     `json:"receipt_number"`
	CashPointName      string     `json:"cash_point_name"`
	CashPointLocation  string     `json:"cash_point_location"`
	CashierName        string     `json:"cashier_name"`
	DateCreated        string     `json:"date_created"`
	DateCreatedRaw     *time.Time `json:"date_created_raw,omitempty"`
	BillingService     string     `json:"billing_service"`
	LineItems          []LineItem `json:"line_items"`
	Payments           []Payment  `json:"payments"`
	TotalAmount        float64    `json:"total_amount"`
	TotalAmountDisplay string     `json:"total_amount_display"`
	TenderedAmount     float64    `json:"tendered_amount"`
	Balance            float64    `json:"balance"`
}

// MapOptions carries the locale and policy knobs the projection depends on.
type MapOptions struct {
	Currency string
	Locale   string
	Policy   StatusPolicy
}

// MapBill projects a bill into its receipt view. It is pure: missing
// references become unset fields, partial line items drop out of the totals,
// and a nil creation date renders as the "--" placeholder.
func MapBill(b *Bill, opts MapOptions) MappedBill {
	live := liveLineItems(b.LineItems)

	m := MappedBill{
		ID:             b.ID,
		PatientID:      b.PatientID,
		Status:         DeriveStatus(b, opts.Policy),
		ReceiptNumber:  b.ReceiptNumber,
		DateCreated:    dates.FormatOrPlaceholder(b.DateCreated, dates.ModeWide),
		DateCreatedRaw: b.DateCreated,
		BillingService: serviceSummary(live),
		LineItems:      live,
		Payments:       b.Payments,
		TotalAmount:    TotalAmount(b.LineItems),
		TenderedAmount: TenderedCash(b.Payments),
	}
	m.Balance = m.TotalAmount - TotalTendered(b.Payments)
	m.TotalAmountDisplay = currency.Format(m.TotalAmount, opts.Currency, opts.Locale)

	m.Identifier, m.PatientName = splitPatientDisplay(b.PatientDisplay)

	if b.CashPointName != nil {
		m.CashPointName = *b.CashPointName
	}
	if b.CashPointLocation != nil {
		m.CashPointLocation = *b.CashPointLocation
	}
	if b.CashierName != nil {
		m.CashierName = *b.CashierName
	}

	return m
}

// splitPatientDisplay breaks the legacy "identifier - name" display string on
// every dash and keeps only the first two segments, so a dash inside the name
// truncates it. Whitespace around the dashes is kept verbatim. This is a
// compatibility shim for old feeds; the structured patient columns are
// authoritative when populated.
func splitPatientDisplay(display *string) (identifier, name *string) {
	if display == nil {
		return nil, nil
	}
	parts := strings.Split(*display, "-")
	identifier = &parts[0]
	if len(parts) > 1 {
		name = &parts[1]
	}
	return identifier, name
}

// serviceSummary joins the service name of each surviving line item, falling
// back from item to billable service to the "--" placeholder per item.
func serviceSummary(items []LineItem) string {
	names := make([]string, 0, len(items))
	for _, li := range items {
		switch {
		case li.Item != nil && *li.Item != "":
			names = append(names, *li.Item)
		case li.BillableService != nil && *li.BillableService != "":
			names = append(names, *li.BillableService)
		default:
			names = append(names, dates.Placeholder)
		}
	}
	return strings.Join(names, serviceSeparator)
}
