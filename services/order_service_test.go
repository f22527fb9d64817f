package services

import (
	"testing"

	"waterzone/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHappyPath(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000001")
	driverUser, driver := seedOnlineDriver(t, db, "+254722000002")

	order, err := CreateOrder(db, customer.ID, 20, "12 Main St", nil, nil, "", "cash")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRequested, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Nil(t, order.AssignedDriverID)
	assert.False(t, order.RequestedAt.IsZero())

	order, err = AssignDriver(db, customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, order.Status)
	require.NotNil(t, order.AssignedDriverID)
	assert.Equal(t, driver.ID, *order.AssignedDriverID)
	require.NotNil(t, order.AssignedAt)

	order, err = AcceptOrder(db, driverUser.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, order.Status)
	require.NotNil(t, order.AcceptedAt)

	order, err = SetEnroute(db, driverUser.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnroute, order.Status)
	require.NotNil(t, order.EnrouteAt)

	order, err = MarkDelivered(db, driverUser.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	require.NotNil(t, order.DeliveredAt)

	// Terminal: nothing moves a delivered order
	_, err = CancelOrder(db, customer.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidState, CodeOf(err))
}

func TestCreateOrderGuards(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000003")
	driverUser, _ := seedOnlineDriver(t, db, "+254722000004")

	t.Run("driver cannot create orders", func(t *testing.T) {
		_, err := CreateOrder(db, driverUser.ID, 20, "12 Main St", nil, nil, "", "cash")
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("litres must be positive", func(t *testing.T) {
		_, err := CreateOrder(db, customer.ID, 0, "12 Main St", nil, nil, "", "cash")
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("address required", func(t *testing.T) {
		_, err := CreateOrder(db, customer.ID, 20, "", nil, nil, "", "cash")
		assert.Equal(t, CodeValidation, CodeOf(err))
	})
}

func TestAssignDriverNoneAvailable(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000005")

	order, err := CreateOrder(db, customer.ID, 10, "5 River Rd", nil, nil, "", "cash")
	require.NoError(t, err)

	_, err = AssignDriver(db, customer.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNoDriverAvailable, CodeOf(err))

	// Order untouched by the failed assignment
	reloaded, err := GetOrder(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRequested, reloaded.Status)
	assert.Nil(t, reloaded.AssignedDriverID)
}

func TestAssignDriverSkipsOfflineAndUnverified(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000006")
	admin := seedUser(t, db, models.RoleAdmin, "+254722000007")

	// Rejected driver online first: must never be picked
	_, rejected := seedOnlineDriver(t, db, "+254722000008")
	_, err := SetVerification(db, admin.ID, rejected.ID, models.VerificationRejected, nil)
	require.NoError(t, err)

	_, approved := seedOnlineDriver(t, db, "+254722000009")

	order, err := CreateOrder(db, customer.ID, 10, "5 River Rd", nil, nil, "", "cash")
	require.NoError(t, err)

	order, err = AssignDriver(db, customer.ID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, order.AssignedDriverID)
	assert.Equal(t, approved.ID, *order.AssignedDriverID)
}

func TestAssignDriverPicksFirstByStableOrder(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000010")

	_, first := seedOnlineDriver(t, db, "+254722000011")
	seedOnlineDriver(t, db, "+254722000012")

	order, err := CreateOrder(db, customer.ID, 10, "5 River Rd", nil, nil, "", "cash")
	require.NoError(t, err)

	order, err = AssignDriver(db, customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *order.AssignedDriverID)
}

func TestAssignDriverGuards(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000013")
	other := seedUser(t, db, models.RoleCustomer, "+254722000014")
	admin := seedUser(t, db, models.RoleAdmin, "+254722000015")
	seedOnlineDriver(t, db, "+254722000016")

	order, err := CreateOrder(db, customer.ID, 10, "5 River Rd", nil, nil, "", "cash")
	require.NoError(t, err)

	t.Run("another customer cannot assign", func(t *testing.T) {
		_, err := AssignDriver(db, other.ID, order.ID)
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("admin can assign on customer's behalf", func(t *testing.T) {
		assigned, err := AssignDriver(db, admin.ID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAssigned, assigned.Status)
	})

	t.Run("assignment never succeeds twice", func(t *testing.T) {
		_, err := AssignDriver(db, customer.ID, order.ID)
		assert.Equal(t, CodeInvalidState, CodeOf(err))
	})

	t.Run("missing order is not found", func(t *testing.T) {
		_, err := AssignDriver(db, customer.ID, 9999)
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})
}

func TestDriverTransitionsEnforceOwnershipAndOrder(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000017")
	assignedUser, _ := seedOnlineDriver(t, db, "+254722000018")
	strangerUser, _ := seedOnlineDriver(t, db, "+254722000019")

	order, err := CreateOrder(db, customer.ID, 10, "5 River Rd", nil, nil, "", "cash")
	require.NoError(t, err)
	order, err = AssignDriver(db, customer.ID, order.ID)
	require.NoError(t, err)

	t.Run("only the assigned driver may accept", func(t *testing.T) {
		_, err := AcceptOrder(db, strangerUser.ID, order.ID)
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("enroute requires accepted first", func(t *testing.T) {
		_, err := SetEnroute(db, assignedUser.ID, order.ID)
		assert.Equal(t, CodeInvalidState, CodeOf(err))
	})

	t.Run("delivered requires enroute first", func(t *testing.T) {
		_, err := MarkDelivered(db, assignedUser.ID, order.ID)
		assert.Equal(t, CodeInvalidState, CodeOf(err))
	})

	t.Run("assigned driver walks the forward path", func(t *testing.T) {
		_, err := AcceptOrder(db, assignedUser.ID, order.ID)
		require.NoError(t, err)
		_, err = SetEnroute(db, assignedUser.ID, order.ID)
		require.NoError(t, err)
		done, err := MarkDelivered(db, assignedUser.ID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, done.PaymentStatus)
	})

	t.Run("unregistered driver role fails not found", func(t *testing.T) {
		bare := seedUser(t, db, models.RoleDriver, "+254722000020")
		_, err := AcceptOrder(db, bare.ID, order.ID)
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})
}

func TestCancelOrderOwnership(t *testing.T) {
	db := newTestDB(t)
	customerA := seedUser(t, db, models.RoleCustomer, "+254722000021")
	customerB := seedUser(t, db, models.RoleCustomer, "+254722000022")
	admin := seedUser(t, db, models.RoleAdmin, "+254722000023")

	order, err := CreateOrder(db, customerB.ID, 15, "7 Lake Ave", nil, nil, "", "wallet")
	require.NoError(t, err)

	// Customer A cancels customer B's order: ownership error, unchanged
	_, err = CancelOrder(db, customerA.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, CodeOf(err))

	reloaded, err := GetOrder(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRequested, reloaded.Status)

	// Admin can cancel anyone's order
	cancelled, err := CancelOrder(db, admin.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelFromEveryNonTerminalState(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000024")
	driverUser, _ := seedOnlineDriver(t, db, "+254722000025")

	advance := map[models.OrderStatus]func(orderID uint){
		models.StatusRequested: func(uint) {},
		models.StatusAssigned: func(id uint) {
			_, err := AssignDriver(db, customer.ID, id)
			require.NoError(t, err)
		},
		models.StatusAccepted: func(id uint) {
			_, err := AssignDriver(db, customer.ID, id)
			require.NoError(t, err)
			_, err = AcceptOrder(db, driverUser.ID, id)
			require.NoError(t, err)
		},
		models.StatusEnroute: func(id uint) {
			_, err := AssignDriver(db, customer.ID, id)
			require.NoError(t, err)
			_, err = AcceptOrder(db, driverUser.ID, id)
			require.NoError(t, err)
			_, err = SetEnroute(db, driverUser.ID, id)
			require.NoError(t, err)
		},
	}

	for state, setup := range advance {
		t.Run(string(state), func(t *testing.T) {
			order, err := CreateOrder(db, customer.ID, 5, "1 Well Close", nil, nil, "", "cash")
			require.NoError(t, err)
			setup(order.ID)

			cancelled, err := CancelOrder(db, customer.ID, order.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusCancelled, cancelled.Status)
		})
	}
}

func TestListOrdersByCustomerActiveFirst(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000026")

	done, err := CreateOrder(db, customer.ID, 5, "1 Well Close", nil, nil, "", "cash")
	require.NoError(t, err)
	_, err = CancelOrder(db, customer.ID, done.ID)
	require.NoError(t, err)

	active, err := CreateOrder(db, customer.ID, 10, "2 Well Close", nil, nil, "", "cash")
	require.NoError(t, err)

	orders, err := ListOrdersByCustomer(db, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, active.ID, orders[0].ID)
	assert.Equal(t, done.ID, orders[1].ID)
}

func TestListOrdersByDriver(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254722000027")
	_, driver := seedOnlineDriver(t, db, "+254722000028")

	order, err := CreateOrder(db, customer.ID, 10, "3 Well Close", nil, nil, "", "cash")
	require.NoError(t, err)
	_, err = AssignDriver(db, customer.ID, order.ID)
	require.NoError(t, err)

	orders, err := ListOrdersByDriver(db, driver.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	orders, err = ListOrdersByDriver(db, driver.ID+1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
