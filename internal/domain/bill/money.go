package bill

// TotalAmount sums price × quantity over the line items. Voided items are
// skipped, as are items missing a price or a quantity — a partial record
// contributes nothing rather than a guessed zero. Negative prices (credit
// lines) pass through.
func TotalAmount(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		if li.Voided || li.Price == nil || li.Quantity == nil {
			continue
		}
		total += *li.Price * *li.Quantity
	}
	return total
}

// TotalTendered sums the applied amount of the non-voided payments.
func TotalTendered(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Voided || p.Amount == nil {
			continue
		}
		total += *p.Amount
	}
	return total
}

// TenderedCash sums what was physically handed over across non-voided
// payments. Distinct from TotalTendered: change given back means
// amount_tendered can exceed amount.
func TenderedCash(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Voided || p.AmountTendered == nil {
			continue
		}
		total += *p.AmountTendered
	}
	return total
}

// Balance is what the patient still owes on the bill.
func Balance(items []LineItem, payments []Payment) float64 {
	return TotalAmount(items) - TotalTendered(payments)
}
