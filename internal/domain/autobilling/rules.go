package autobilling

import (
	"context"
	"strings"
)

// Catalog looks up billable services by name. FindByName returns (nil, nil)
// when nothing matches.
type Catalog interface {
	FindByName(ctx context.Context, name string) (*CatalogEntry, error)
}

// Toggles enables or disables each event source.
type Toggles struct {
	LabOrders     bool
	DrugOrders    bool
	Procedures    bool
	Consultations bool
}

func (t Toggles) allows(eventType string) bool {
	switch eventType {
	case EventLabOrder:
		return t.LabOrders
	case EventDrugOrder:
		return t.DrugOrders
	case EventProcedure:
		return t.Procedures
	case EventConsultation:
		return t.Consultations
	default:
		return false
	}
}

// Matcher maps billing events onto catalogue entries. The only rule today is
// an exact case-insensitive name match; fuzzier rules would lower Confidence.
type Matcher struct {
	catalog Catalog
	toggles Toggles
}

func NewMatcher(catalog Catalog, toggles Toggles) *Matcher {
	return &Matcher{catalog: catalog, toggles: toggles}
}

// Match returns the proposed bill item for an event, or nil when the event's
// source is disabled or no service matches.
func (m *Matcher) Match(ctx context.Context, ev BillingEvent) (*ProposedBillItem, error) {
	if !m.toggles.allows(ev.Type) {
		return nil, nil
	}
	name := strings.TrimSpace(ev.ConceptName)
	if name == "" {
		return nil, nil
	}
	entry, err := m.catalog.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return &ProposedBillItem{
		Event:      ev,
		ServiceID:  entry.ServiceID,
		Name:       entry.Name,
		Price:      entry.Price,
		Quantity:   1,
		Confidence: 1.0,
		Reason:     "exact name match",
	}, nil
}
