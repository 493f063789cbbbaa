package model

// Action is a human-friendly decision label for a simulated day.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Decision is what a policy returns for one day. Amount must never exceed
// the inventory the policy was shown; the engine treats oversell as a bug.
type Decision struct {
	Action Action
	// Amount in tons; zero for HOLD.
	Amount float64
	// Reason is a diagnostic tag, e.g. "cooldown" or "forced_liquidation".
	Reason string
}

func Hold(reason string) Decision {
	return Decision{Action: ActionHold, Reason: reason}
}

func Sell(amount float64, reason string) Decision {
	if amount <= 0 {
		return Hold(reason)
	}
	return Decision{Action: ActionSell, Amount: amount, Reason: reason}
}
