package orders

import "mudra/models"

// transitions is the order status machine. Completed and failed are
// terminal.
var transitions = map[string][]string{
	models.OrderPending:    {models.OrderProcessing},
	models.OrderProcessing: {models.OrderCompleted, models.OrderFailed},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case models.OrderPending, models.OrderProcessing, models.OrderCompleted, models.OrderFailed:
		return true
	}
	return false
}
