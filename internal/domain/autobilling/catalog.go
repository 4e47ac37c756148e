package autobilling

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hmis/billing/internal/domain/billableservice"
)

// serviceCatalog adapts the billable-service catalogue to the matcher.
// Disabled services never match; the first configured price is proposed.
type serviceCatalog struct {
	svc *billableservice.Service
}

func NewServiceCatalog(svc *billableservice.Service) Catalog {
	return &serviceCatalog{svc: svc}
}

func (c *serviceCatalog) FindByName(ctx context.Context, name string) (*CatalogEntry, error) {
	bs, err := c.svc.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if bs.ServiceStatus != billableservice.StatusEnabled {
		return nil, nil
	}

	entry := &CatalogEntry{ServiceID: bs.ID, Name: bs.Name}
	full, err := c.svc.Get(ctx, bs.ID)
	if err == nil && len(full.Prices) > 0 {
		price := full.Prices[0].Price
		entry.Price = &price
	}
	return entry, nil
}
