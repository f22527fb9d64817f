package handlers

import (
	"net/http"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/models"
	"waterzone/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterDriverRequest struct {
	VehiclePlate string `json:"vehicle_plate" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	DocsMetadata string `json:"docs_metadata"`
}

// RegisterDriver creates the caller's driver record (idempotent)
func RegisterDriver(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	driver, err := services.RegisterDriver(config.DB, middleware.GetUserID(c),
		req.VehiclePlate, req.VehicleType, req.DocsMetadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver registered",
		"driver":  driver,
	})
}

// GetMyDriver returns the caller's driver record and presence row
func GetMyDriver(c *gin.Context) {
	driver, err := services.GetDriverByUser(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	status, err := services.GetDriverStatus(config.DB, driver.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver, "status": status})
}

type UpdatePresenceRequest struct {
	IsOnline *bool    `json:"is_online" binding:"required"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// UpdatePresence toggles the caller online or offline
func UpdatePresence(c *gin.Context) {
	var req UpdatePresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status, err := services.UpdatePresence(config.DB, middleware.GetUserID(c), *req.IsOnline, req.Lat, req.Lng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

type UpdateLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// UpdateLocation is the driver location heartbeat
func UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status, err := services.UpdateLocation(config.DB, middleware.GetUserID(c), *req.Lat, *req.Lng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetMyDeliveries returns all orders assigned to the logged-in driver
func GetMyDeliveries(c *gin.Context) {
	driver, err := services.GetDriverByUser(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := services.ListOrdersByDriver(config.DB, driver.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AcceptOrder transitions assigned -> accepted
func AcceptOrder(c *gin.Context) {
	driverOrderTransition(c, services.AcceptOrder, "Order accepted")
}

// SetEnroute transitions accepted -> enroute
func SetEnroute(c *gin.Context) {
	driverOrderTransition(c, services.SetEnroute, "Order en route")
}

// MarkDelivered transitions enroute -> delivered and settles payment
func MarkDelivered(c *gin.Context) {
	driverOrderTransition(c, services.MarkDelivered, "Order delivered")
}

func driverOrderTransition(c *gin.Context, fn func(db *gorm.DB, userID, orderID uint) (*models.Order, error), message string) {
	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, svcErr := fn(config.DB, middleware.GetUserID(c), orderID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"order":   order,
	})
}
