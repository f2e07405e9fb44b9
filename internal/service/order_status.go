package service

import "github.com/jemo-market/api/internal/constants"

// orderTransitions allowed forward moves per status. Cancellation is only
// reachable from the pre-transit states.
var orderTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusInTransit,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusInTransit: {
		constants.OrderStatusDelivered,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted,
	},
}

// CanTransitionOrder reports whether an order may move between two statuses
func CanTransitionOrder(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderCancellable reports whether an order status still permits cancellation
func OrderCancellable(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusConfirmed
}
