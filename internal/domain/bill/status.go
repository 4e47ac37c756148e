package bill

// StatusPolicy names a strategy for deriving a bill's effective status from
// its line items.
type StatusPolicy string

const (
	// StatusPolicyAggregate ignores voided items, falls back to the bill's
	// own status when none remain, and otherwise reports PENDING until every
	// surviving item is settled.
	StatusPolicyAggregate StatusPolicy = "aggregate"

	// StatusPolicyTrustBill reproduces the older cashier-screen behaviour:
	// with at most one line item the bill's own status is trusted verbatim,
	// and with more the items are aggregated without filtering voided ones.
	StatusPolicyTrustBill StatusPolicy = "trust-bill"
)

// ParseStatusPolicy maps a config string to a policy, defaulting to aggregate.
func ParseStatusPolicy(s string) StatusPolicy {
	if StatusPolicy(s) == StatusPolicyTrustBill {
		return StatusPolicyTrustBill
	}
	return StatusPolicyAggregate
}

// DeriveStatus computes the bill's effective status under the given policy.
// It is total: any input yields a status.
func DeriveStatus(b *Bill, policy StatusPolicy) string {
	if policy == StatusPolicyTrustBill {
		if len(b.LineItems) <= 1 {
			return b.Status
		}
		return aggregate(b.LineItems)
	}

	live := liveLineItems(b.LineItems)
	if len(live) == 0 {
		return b.Status
	}
	return aggregate(live)
}

func aggregate(items []LineItem) string {
	for _, li := range items {
		if li.PaymentStatus == StatusPending {
			return StatusPending
		}
	}
	return StatusPaid
}

// liveLineItems returns the non-voided items in their original order.
func liveLineItems(items []LineItem) []LineItem {
	var live []LineItem
	for _, li := range items {
		if !li.Voided {
			live = append(live, li)
		}
	}
	return live
}
