package statemachine

import (
	"testing"

	"waterzone/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		allowed bool
	}{
		{"customer assigns requested order", models.StatusRequested, models.StatusAssigned, "customer", true},
		{"admin assigns requested order", models.StatusRequested, models.StatusAssigned, "admin", true},
		{"driver cannot assign", models.StatusRequested, models.StatusAssigned, "driver", false},
		{"driver accepts assigned order", models.StatusAssigned, models.StatusAccepted, "driver", true},
		{"customer cannot accept", models.StatusAssigned, models.StatusAccepted, "customer", false},
		{"driver goes enroute", models.StatusAccepted, models.StatusEnroute, "driver", true},
		{"driver delivers", models.StatusEnroute, models.StatusDelivered, "driver", true},
		{"cannot skip accepted", models.StatusAssigned, models.StatusEnroute, "driver", false},
		{"cannot skip enroute", models.StatusAccepted, models.StatusDelivered, "driver", false},
		{"cannot deliver from assigned", models.StatusAssigned, models.StatusDelivered, "driver", false},
		{"customer cancels requested", models.StatusRequested, models.StatusCancelled, "customer", true},
		{"customer cancels enroute", models.StatusEnroute, models.StatusCancelled, "customer", true},
		{"admin cancels accepted", models.StatusAccepted, models.StatusCancelled, "admin", true},
		{"cannot cancel delivered", models.StatusDelivered, models.StatusCancelled, "customer", false},
		{"cannot cancel cancelled", models.StatusCancelled, models.StatusCancelled, "customer", false},
		{"delivered is terminal", models.StatusDelivered, models.StatusAssigned, "admin", false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusRequested, "customer", false},
		{"no backward transition", models.StatusAccepted, models.StatusAssigned, "driver", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusAssigned, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusRequested))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusEnroute))
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, models.StatusDelivered.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
	assert.False(t, models.StatusRequested.Terminal())
	assert.False(t, models.StatusEnroute.Terminal())
}
