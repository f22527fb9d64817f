package handlers

import (
	"net/http"

	"waterzone/middleware"
	"waterzone/realtime"

	"github.com/gin-gonic/gin"
)

// Stream upgrades to a WebSocket carrying order update events for the
// authenticated user. The token rides in a query parameter because
// browser WebSocket clients cannot set an Authorization header.
func Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter required"})
		return
	}
	claims, err := middleware.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := realtime.DefaultHub.ServeWS(c.Writer, c.Request, claims.UserID); err != nil {
		// Upgrade failures write their own response
		return
	}
}
