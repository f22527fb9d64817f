package handlers

import (
	"net/http"

	"waterzone/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. The
// body carries both the stable code and the human-readable message the
// client surfaces verbatim.
func respondError(c *gin.Context, err error) {
	var status int
	switch services.CodeOf(err) {
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeForbidden:
		status = http.StatusForbidden
	case services.CodeInvalidState:
		status = http.StatusUnprocessableEntity
	case services.CodeNoDriverAvailable:
		status = http.StatusConflict
	case services.CodeValidation:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": gin.H{
		"code":    services.CodeOf(err),
		"message": err.Error(),
	}})
}

// respondBindError reports malformed client input, checked before any
// backend call
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
		"code":    services.CodeValidation,
		"message": err.Error(),
	}})
}
