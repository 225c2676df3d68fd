package viewmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/viewmodel"
)

func TestFilterParam(t *testing.T) {
	delivered := entities.StatusDelivered
	cancelled := entities.StatusCancelled
	delayed := entities.StatusDelayed

	tests := []struct {
		label string
		want  *entities.OrderStatus
	}{
		{"All", nil},
		{"Tous", nil},
		{"Delivered", &delivered},
		{"Livré", &delivered},
		{"DELIVERED", &delivered},
		{"Cancelled", &cancelled},
		{"Annulé", &cancelled},
		{"CANCELLED", &cancelled},
		{"Delayed", &delayed},
		{"Reporté", &delayed},
		{"DELAYED", &delayed},
		{"garbage", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := viewmodel.FilterParam(tt.label)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	tests := []struct {
		status entities.OrderStatus
		want   string
	}{
		{entities.StatusPending, "En attente"},
		{entities.StatusAccepted, "En attente"},
		{entities.StatusAssignedToDelivery, "En cours"},
		{entities.StatusDelivered, "Livré"},
		{entities.StatusCancelled, "Annulé"},
		{entities.StatusDelayed, "Reporté"},
		{entities.StatusRejected, "En attente"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, viewmodel.DisplayStatus(tt.status))
		})
	}
}
