package viewmodel

import "github.com/ichaoui56/sonic-courier/internal/entities"

// filterParams maps every display filter label — English and the French
// labels the UI shows — to the backend status it selects. Labels meaning
// "everything" are absent: FilterParam returns nil for them.
var filterParams = map[string]entities.OrderStatus{
	"Delivered": entities.StatusDelivered,
	"Livré":     entities.StatusDelivered,
	"Cancelled": entities.StatusCancelled,
	"Annulé":    entities.StatusCancelled,
	"Delayed":   entities.StatusDelayed,
	"Reporté":   entities.StatusDelayed,

	// raw backend values pass through unchanged
	"DELIVERED": entities.StatusDelivered,
	"CANCELLED": entities.StatusCancelled,
	"DELAYED":   entities.StatusDelayed,
}

// FilterParam resolves a display label to the status filter sent to the
// backend. "All"/"Tous" and anything unrecognized mean no filter at all.
func FilterParam(label string) *entities.OrderStatus {
	if status, ok := filterParams[label]; ok {
		return &status
	}
	return nil
}

// DisplayStatus renders a backend status as the label the UI shows.
func DisplayStatus(status entities.OrderStatus) string {
	switch status {
	case entities.StatusPending, entities.StatusAccepted:
		return "En attente"
	case entities.StatusAssignedToDelivery:
		return "En cours"
	case entities.StatusDelivered:
		return "Livré"
	case entities.StatusCancelled:
		return "Annulé"
	case entities.StatusDelayed:
		return "Reporté"
	default:
		return "En attente"
	}
}
