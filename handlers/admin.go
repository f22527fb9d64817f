package handlers

import (
	"net/http"
	"time"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/models"
	"waterzone/realtime"
	"waterzone/services"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllDrivers returns all drivers with their presence rows
func AdminGetAllDrivers(c *gin.Context) {
	var drivers []models.Driver
	query := config.DB.Preload("User")
	if verification := c.Query("verification"); verification != "" {
		query = query.Where("verification = ?", verification)
	}
	query.Find(&drivers)
	c.JSON(http.StatusOK, gin.H{"count": len(drivers), "drivers": drivers})
}

// AdminGetAllOrders returns all orders with a status summary
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Customer").Preload("AssignedDriver")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	query.Order("updated_at desc").Find(&orders)

	summary := map[string]int{}
	var litresDelivered float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			litresDelivered += o.Litres
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":    summary,
		"litres_delivered": litresDelivered,
		"count":            len(orders),
		"orders":           orders,
	})
}

type SetVerificationRequest struct {
	Verification    models.VerificationStatus `json:"verification_status" binding:"required"`
	RejectionReason *string                   `json:"rejection_reason"`
}

// SetDriverVerification approves or rejects a driver — admin only
func SetDriverVerification(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	driver, svcErr := services.SetVerification(config.DB, middleware.GetUserID(c),
		driverID, req.Verification, req.RejectionReason)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver verification updated",
		"driver":  driver,
	})
}

type ForceOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

// AdminForceOrderStatus lets admin override any order state (emergency
// use). Bypasses the state machine but still stamps timestamps.
func AdminForceOrderStatus(c *gin.Context) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req ForceOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.Status.Valid() {
		respondError(c, services.Validation("Unknown order status"))
		return
	}

	order, svcErr := services.GetOrder(config.DB, orderID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	prevStatus := order.Status
	order.Status = req.Status
	order.UpdatedAt = time.Now()
	if err := config.DB.Save(order).Error; err != nil {
		respondError(c, services.Internal("Failed to update order"))
		return
	}
	realtime.PublishOrderUpdate("order_status_forced", order, order.CustomerID)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
