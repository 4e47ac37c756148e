package billableservice

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusEnabled  = "ENABLED"
	StatusDisabled = "DISABLED"
)

// BillableService is a chargeable catalogue entry. A service carries one
// price per payment mode; the cashier picks the price matching how the
// patient pays.
type BillableService struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	ShortName     string     `db:"short_name" json:"short_name"`
	ServiceStatus string     `db:"service_status" json:"service_status"`
	ServiceTypeID *uuid.UUID `db:"service_type_id" json:"service_type_id,omitempty"`
	ConceptID     *uuid.UUID `db:"concept_id" json:"concept_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	Prices []ServicePrice `db:"-" json:"prices"`
}

type ServicePrice struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	Name            string    `db:"name" json:"name"`
	Price           float64   `db:"price" json:"price"`
	PaymentModeID   uuid.UUID `db:"payment_mode_id" json:"payment_mode_id"`
	PaymentModeName *string   `db:"payment_mode_name" json:"payment_mode_name,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

var validServiceStatuses = map[string]bool{
	StatusEnabled: true, StatusDisabled: true,
}
