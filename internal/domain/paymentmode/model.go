package paymentmode

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMode is a way of settling a bill (cash, insurance, mobile money,
// waiver). Modes referenced by payments or service prices cannot be deleted,
// only retired.
type PaymentMode struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	Retired     bool      `db:"retired" json:"retired"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
