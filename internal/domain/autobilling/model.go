package autobilling

import (
	"time"

	"github.com/google/uuid"
)

// Event sources. Each source can be toggled off independently.
const (
	EventLabOrder     = "lab_order"
	EventDrugOrder    = "drug_order"
	EventProcedure    = "procedure"
	EventConsultation = "consultation"
)

// BillingEvent is a clinical occurrence that may translate into a bill line:
// a lab order placed, a drug dispensed, a procedure done, a consultation held.
type BillingEvent struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Type        string    `db:"event_type" json:"event_type"`
	ConceptName string    `db:"concept_name" json:"concept_name"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	Billed      bool      `db:"billed" json:"billed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CatalogEntry is the slice of a billable service the matcher needs.
type CatalogEntry struct {
	ServiceID uuid.UUID
	Name      string
	Price     *float64
}

// ProposedBillItem is a matched event ready to be placed on a draft bill.
type ProposedBillItem struct {
	Event      BillingEvent
	ServiceID  uuid.UUID
	Name       string
	Price      *float64
	Quantity   float64
	Confidence float64
	Reason     string
}

var validEventTypes = map[string]bool{
	EventLabOrder: true, EventDrugOrder: true,
	EventProcedure: true, EventConsultation: true,
}
