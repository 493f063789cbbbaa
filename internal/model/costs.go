package model

// StorageCost is the cost of holding inventory at a given price level.
// Deterministic and side-effect free.
func StorageCost(tons, price, ratePerDay float64, days int) float64 {
	if tons <= 0 || days <= 0 {
		return 0
	}
	return tons * price * ratePerDay * float64(days)
}

// TransactionCost is levied on executed sales only, never on held inventory.
func TransactionCost(amount, price, rate float64) float64 {
	if amount <= 0 {
		return 0
	}
	return amount * price * rate
}
