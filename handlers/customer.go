package handlers

import (
	"net/http"
	"strconv"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/models"
	"waterzone/services"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Litres        float64  `json:"litres" binding:"required,gt=0"`
	AddressText   string   `json:"address_text" binding:"required"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Notes         string   `json:"notes"`
	PaymentMethod string   `json:"payment_method" binding:"required"`
}

// CreateOrder places a new water delivery order (customer only)
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := services.CreateOrder(config.DB, middleware.GetUserID(c),
		req.Litres, req.AddressText, req.Lat, req.Lng, req.Notes, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created",
		"order":   order,
	})
}

// GetMyOrders returns the customer's orders, active ones first
func GetMyOrders(c *gin.Context) {
	orders, err := services.ListOrdersByCustomer(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order for tracking. Customers see
// their own orders; drivers see orders assigned to them; admins see all.
func GetOrderDetail(c *gin.Context) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, svcErr := services.GetOrder(config.DB, orderID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	userID := middleware.GetUserID(c)
	switch middleware.GetRole(c) {
	case models.RoleAdmin:
	case models.RoleCustomer:
		if order.CustomerID != userID {
			respondError(c, services.Forbidden("This order does not belong to you"))
			return
		}
	case models.RoleDriver:
		driver, err := services.GetDriverByUser(config.DB, userID)
		if err != nil || order.AssignedDriverID == nil || *order.AssignedDriverID != driver.ID {
			respondError(c, services.Forbidden("Order not assigned to you"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// AssignDriver picks the first online approved driver for the order
func AssignDriver(c *gin.Context) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, svcErr := services.AssignDriver(config.DB, middleware.GetUserID(c), orderID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver assigned",
		"order":   order,
	})
}

// CancelOrder cancels an order from any non-terminal state
func CancelOrder(c *gin.Context) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, svcErr := services.CancelOrder(config.DB, middleware.GetUserID(c), orderID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
