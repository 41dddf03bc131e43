package services

import (
	"errors"

	"github.com/qrdine/qrdine-api/models"
)

// ErrNoTransition is returned when an order cannot be advanced because its
// current status has no legal next step.
var ErrNoTransition = errors.New("no valid status transition")

// nextStatus is the forward-only transition table. Pending and accepted are
// equivalent for advancement purposes: both move to preparing. Served and
// cancelled are terminal.
var nextStatus = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:   models.StatusPreparing,
	models.StatusAccepted:  models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusServed,
}

// NextStatus returns the single legal next status, or ok=false for terminal
// (or unknown) statuses.
func NextStatus(status models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := nextStatus[status]
	return next, ok
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusServed || status == models.StatusCancelled
}

// CanCancel reports whether the administrative cancel transition is legal.
// Cancellation is reachable from every non-terminal state.
func CanCancel(status models.OrderStatus) bool {
	switch status {
	case models.StatusPending, models.StatusAccepted, models.StatusPreparing, models.StatusReady:
		return true
	}
	return false
}

// KitchenActionLabel is the button text on the kitchen board for the order's
// advance action. Empty when there is nothing to advance to.
func KitchenActionLabel(status models.OrderStatus) string {
	switch status {
	case models.StatusPending, models.StatusAccepted:
		return "Start Cooking →"
	case models.StatusPreparing:
		return "Mark Ready →"
	case models.StatusReady:
		return "Deliver →"
	}
	return ""
}

// AdminActionLabel is the equivalent label on the admin order board.
func AdminActionLabel(status models.OrderStatus) string {
	switch status {
	case models.StatusPending, models.StatusAccepted:
		return "Start Preparing →"
	case models.StatusPreparing:
		return "Mark Ready →"
	case models.StatusReady:
		return "Mark Served →"
	}
	return ""
}
