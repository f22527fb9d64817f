package services

import (
	"errors"
	"sort"
	"time"

	"waterzone/logger"
	"waterzone/models"
	"waterzone/realtime"
	"waterzone/statemachine"

	"gorm.io/gorm"
)

// CreateOrder places a new delivery order for a customer
func CreateOrder(db *gorm.DB, customerID uint, litres float64, addressText string, lat, lng *float64, notes, paymentMethod string) (*models.Order, error) {
	if _, err := RequireRole(db, customerID, models.RoleCustomer); err != nil {
		return nil, err
	}
	if litres <= 0 {
		return nil, Validation("Litres must be positive")
	}
	if addressText == "" {
		return nil, Validation("Delivery address is required")
	}
	if paymentMethod == "" {
		return nil, Validation("Payment method is required")
	}

	now := time.Now()
	order := models.Order{
		CustomerID:    customerID,
		Litres:        litres,
		AddressText:   addressText,
		Lat:           lat,
		Lng:           lng,
		Notes:         notes,
		Status:        models.StatusRequested,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentUnpaid,
		RequestedAt:   now,
		UpdatedAt:     now,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, Internal("Failed to create order")
	}

	log := logger.WithOrderID(order.ID)
	log.Info().Uint("customer_id", customerID).Msg("order created")
	realtime.PublishOrderUpdate("order_created", &order, customerID)
	return &order, nil
}

// AssignDriver moves a requested order to assigned, picking the first
// online approved driver in presence-row id order. First match wins: no
// load balancing, no proximity ranking, and no reservation step — two
// concurrent assignments may pick the same driver.
// Caller must be the customer who placed the order, or an admin.
func AssignDriver(db *gorm.DB, callerUserID, orderID uint) (*models.Order, error) {
	caller, err := RequireRole(db, callerUserID, models.RoleCustomer, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	order, err := GetOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleCustomer && order.CustomerID != callerUserID {
		return nil, Forbidden("Only the customer who placed the order can assign a driver")
	}
	if order.AssignedDriverID != nil {
		return nil, InvalidState("Order already has a driver")
	}
	if err := statemachine.CanTransition(order.Status, models.StatusAssigned, string(caller.Role)); err != nil {
		return nil, InvalidState(err.Error())
	}

	online, err := ListOnlineDrivers(db)
	if err != nil {
		return nil, err
	}
	if len(online) == 0 {
		return nil, NoDriverAvailable("No online driver available")
	}
	chosen := online[0].Driver

	now := time.Now()
	order.AssignedDriverID = &chosen.ID
	order.Status = models.StatusAssigned
	order.AssignedAt = &now
	order.UpdatedAt = now
	if err := db.Save(order).Error; err != nil {
		return nil, Internal("Failed to assign driver")
	}

	log := logger.WithOrderID(order.ID)
	log.Info().Uint("driver_id", chosen.ID).Msg("driver assigned")
	realtime.PublishOrderUpdate("order_assigned", order, order.CustomerID, chosen.UserID)
	return order, nil
}

// AcceptOrder: the assigned driver acknowledges the order
func AcceptOrder(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	return driverTransition(db, userID, orderID, models.StatusAccepted, "order_accepted", func(order *models.Order, now time.Time) {
		order.AcceptedAt = &now
	})
}

// SetEnroute: the assigned driver is on the way
func SetEnroute(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	return driverTransition(db, userID, orderID, models.StatusEnroute, "order_enroute", func(order *models.Order, now time.Time) {
		order.EnrouteAt = &now
	})
}

// MarkDelivered completes the order. This is the only payment-settlement
// trigger in the system: delivery flips the payment flag to paid.
func MarkDelivered(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	return driverTransition(db, userID, orderID, models.StatusDelivered, "order_delivered", func(order *models.Order, now time.Time) {
		order.DeliveredAt = &now
		order.PaymentStatus = models.PaymentPaid
	})
}

// driverTransition runs one forward step of the lifecycle on behalf of
// the assigned driver: role check, ownership check, state machine guard,
// then a single whole-row update stamping the milestone field.
func driverTransition(db *gorm.DB, userID, orderID uint, to models.OrderStatus, eventType string, stamp func(*models.Order, time.Time)) (*models.Order, error) {
	if _, err := RequireRole(db, userID, models.RoleDriver); err != nil {
		return nil, err
	}
	driver, err := GetDriverByUser(db, userID)
	if err != nil {
		return nil, err
	}

	order, err := GetOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if order.AssignedDriverID == nil || *order.AssignedDriverID != driver.ID {
		return nil, Forbidden("Order not assigned to you")
	}
	if err := statemachine.CanTransition(order.Status, to, "driver"); err != nil {
		return nil, InvalidState(err.Error())
	}

	now := time.Now()
	order.Status = to
	order.UpdatedAt = now
	stamp(order, now)
	if err := db.Save(order).Error; err != nil {
		return nil, Internal("Failed to update order")
	}

	log := logger.WithOrderID(order.ID)
	log.Info().Str("status", string(to)).Msg("order transitioned")
	realtime.PublishOrderUpdate(eventType, order, order.CustomerID, userID)
	return order, nil
}

// CancelOrder cancels an order from any non-terminal state. Customers
// can only cancel their own orders; admins can cancel any.
func CancelOrder(db *gorm.DB, callerUserID, orderID uint) (*models.Order, error) {
	caller, err := RequireRole(db, callerUserID, models.RoleCustomer, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	order, err := GetOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleCustomer && order.CustomerID != callerUserID {
		return nil, Forbidden("Not your order")
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, string(caller.Role)); err != nil {
		return nil, InvalidState(err.Error())
	}

	now := time.Now()
	order.Status = models.StatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now
	if err := db.Save(order).Error; err != nil {
		return nil, Internal("Failed to cancel order")
	}

	log := logger.WithOrderID(order.ID)
	log.Info().Msg("order cancelled")
	recipients := []uint{order.CustomerID}
	if order.AssignedDriverID != nil {
		if driver := new(models.Driver); db.First(driver, *order.AssignedDriverID).Error == nil {
			recipients = append(recipients, driver.UserID)
		}
	}
	realtime.PublishOrderUpdate("order_cancelled", order, recipients...)
	return order, nil
}

// GetOrder returns an order by id
func GetOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Order not found")
		}
		return nil, Internal(err.Error())
	}
	return &order, nil
}

// ListOrdersByCustomer returns a customer's orders, active statuses
// before terminal ones, most recently updated first within each group
func ListOrdersByCustomer(db *gorm.DB, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Where("customer_id = ?", customerID).Order("updated_at desc").Find(&orders).Error; err != nil {
		return nil, Internal(err.Error())
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Active() && !orders[j].Active()
	})
	return orders, nil
}

// ListOrdersByDriver returns a driver's orders in recency order
func ListOrdersByDriver(db *gorm.DB, driverID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Where("assigned_driver_id = ?", driverID).Order("updated_at desc").Find(&orders).Error; err != nil {
		return nil, Internal(err.Error())
	}
	return orders, nil
}
