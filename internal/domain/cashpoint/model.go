package cashpoint

import (
	"time"

	"github.com/google/uuid"
)

// CashPoint is a till where bills are raised and payments taken. Cash points
// are retired rather than deleted once bills reference them.
type CashPoint struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Description  *string    `db:"description" json:"description,omitempty"`
	LocationID   *uuid.UUID `db:"location_id" json:"location_id,omitempty"`
	LocationName *string    `db:"location_name" json:"location_name,omitempty"`
	Retired      bool       `db:"retired" json:"retired"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
