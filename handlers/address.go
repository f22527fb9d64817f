package handlers

import (
	"net/http"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/services"

	"github.com/gin-gonic/gin"
)

type CreateAddressRequest struct {
	Label       string   `json:"label" binding:"required"`
	AddressText string   `json:"address_text" binding:"required"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	IsDefault   bool     `json:"is_default"`
}

// CreateAddress saves a delivery address for the customer
func CreateAddress(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	addr, err := services.CreateAddress(config.DB, middleware.GetUserID(c),
		req.Label, req.AddressText, req.Lat, req.Lng, req.IsDefault)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": addr})
}

// ListAddresses returns the customer's saved addresses, default first
func ListAddresses(c *gin.Context) {
	addrs, err := services.ListAddresses(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addrs), "addresses": addrs})
}

// SetDefaultAddress marks one saved address as the default
func SetDefaultAddress(c *gin.Context) {
	addressID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	addr, svcErr := services.SetDefaultAddress(config.DB, middleware.GetUserID(c), addressID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr})
}

// DeleteAddress removes one saved address
func DeleteAddress(c *gin.Context) {
	addressID, err := parseID(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	if svcErr := services.DeleteAddress(config.DB, middleware.GetUserID(c), addressID); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
