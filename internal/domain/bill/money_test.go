package bill

import "testing"

func fp(v float64) *float64 { return &v }

func TestTotalAmount(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  float64
	}{
		{
			name: "sums price times quantity",
			items: []LineItem{
				{Price: fp(100), Quantity: fp(2)},
				{Price: fp(50), Quantity: fp(1)},
			},
			want: 250,
		},
		{
			name: "skips voided items",
			items: []LineItem{
				{Price: fp(100), Quantity: fp(2)},
				{Price: fp(999), Quantity: fp(1), Voided: true},
			},
			want: 200,
		},
		{
			name: "skips items missing price",
			items: []LineItem{
				{Price: nil, Quantity: fp(3)},
				{Price: fp(50), Quantity: fp(1)},
			},
			want: 50,
		},
		{
			name: "skips items missing quantity",
			items: []LineItem{
				{Price: fp(100), Quantity: nil},
			},
			want: 0,
		},
		{
			name: "negative prices pass through",
			items: []LineItem{
				{Price: fp(100), Quantity: fp(1)},
				{Price: fp(-30), Quantity: fp(1)},
			},
			want: 70,
		},
		{name: "empty", items: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalAmount(tt.items); got != tt.want {
				t.Errorf("TotalAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalAmount_VoidedItemRemovalIsNeutral(t *testing.T) {
	withVoided := []LineItem{
		{Price: fp(100), Quantity: fp(2)},
		{Price: fp(75), Quantity: fp(4), Voided: true},
	}
	if got, want := TotalAmount(withVoided), TotalAmount(withVoided[:1]); got != want {
		t.Errorf("voided item changed the total: %v vs %v", got, want)
	}
}

func TestTotalTendered(t *testing.T) {
	payments := []Payment{
		{Amount: fp(100)},
		{Amount: fp(50), Voided: true},
		{Amount: nil},
		{Amount: fp(25)},
	}
	if got := TotalTendered(payments); got != 125 {
		t.Errorf("TotalTendered() = %v, want 125", got)
	}
}

func TestTenderedCash(t *testing.T) {
	payments := []Payment{
		{AmountTendered: fp(100)},
		{AmountTendered: nil},
	}
	if got := TenderedCash(payments); got != 100 {
		t.Errorf("TenderedCash() = %v, want 100", got)
	}

	payments = append(payments, Payment{AmountTendered: fp(500), Voided: true})
	if got := TenderedCash(payments); got != 100 {
		t.Errorf("TenderedCash() with voided payment = %v, want 100", got)
	}
}

func TestBalance(t *testing.T) {
	items := []LineItem{{Price: fp(200), Quantity: fp(1)}}
	payments := []Payment{{Amount: fp(150), AmountTendered: fp(200)}}
	if got := Balance(items, payments); got != 50 {
		t.Errorf("Balance() = %v, want 50", got)
	}
}
