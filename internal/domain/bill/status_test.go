package bill

import "testing"

func TestDeriveStatus_Aggregate(t *testing.T) {
	tests := []struct {
		name string
		bill Bill
		want string
	}{
		{
			name: "single paid item",
			bill: Bill{Status: StatusPending, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
			}},
			want: StatusPaid,
		},
		{
			name: "any pending item wins",
			bill: Bill{Status: StatusPaid, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
				{PaymentStatus: StatusPending},
			}},
			want: StatusPending,
		},
		{
			name: "voided items are ignored",
			bill: Bill{Status: StatusPending, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
				{PaymentStatus: StatusPending, Voided: true},
			}},
			want: StatusPaid,
		},
		{
			name: "all voided falls back to bill status",
			bill: Bill{Status: StatusPaid, LineItems: []LineItem{
				{PaymentStatus: StatusPending, Voided: true},
			}},
			want: StatusPaid,
		},
		{
			name: "no items falls back to bill status",
			bill: Bill{Status: StatusPosted},
			want: StatusPosted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(&tt.bill, StatusPolicyAggregate); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_TrustBill(t *testing.T) {
	tests := []struct {
		name string
		bill Bill
		want string
	}{
		{
			name: "single item trusts bill status over item status",
			bill: Bill{Status: StatusPosted, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
			}},
			want: StatusPosted,
		},
		{
			name: "no items trusts bill status",
			bill: Bill{Status: StatusPending},
			want: StatusPending,
		},
		{
			name: "multiple items aggregate without voided filtering",
			bill: Bill{Status: StatusPaid, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
				{PaymentStatus: StatusPending, Voided: true},
			}},
			want: StatusPending,
		},
		{
			name: "multiple paid items",
			bill: Bill{Status: StatusPending, LineItems: []LineItem{
				{PaymentStatus: StatusPaid},
				{PaymentStatus: StatusPaid},
			}},
			want: StatusPaid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(&tt.bill, StatusPolicyTrustBill); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_PoliciesDivergeOnVoidedItems(t *testing.T) {
	// A paid item plus a voided pending one: the aggregate policy settles
	// the bill, the legacy policy keeps it pending.
	b := Bill{Status: StatusPending, LineItems: []LineItem{
		{PaymentStatus: StatusPaid},
		{PaymentStatus: StatusPending, Voided: true},
	}}
	if got := DeriveStatus(&b, StatusPolicyAggregate); got != StatusPaid {
		t.Errorf("aggregate policy = %q, want %q", got, StatusPaid)
	}
	if got := DeriveStatus(&b, StatusPolicyTrustBill); got != StatusPending {
		t.Errorf("trust-bill policy = %q, want %q", got, StatusPending)
	}
}

func TestParseStatusPolicy(t *testing.T) {
	if got := ParseStatusPolicy("trust-bill"); got != StatusPolicyTrustBill {
		t.Errorf("ParseStatusPolicy(trust-bill) = %q", got)
	}
	if got := ParseStatusPolicy("aggregate"); got != StatusPolicyAggregate {
		t.Errorf("ParseStatusPolicy(aggregate) = %q", got)
	}
	if got := ParseStatusPolicy("bogus"); got != StatusPolicyAggregate {
		t.Errorf("ParseStatusPolicy(bogus) = %q, want default aggregate", got)
	}
}
