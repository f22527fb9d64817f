package handlers

import (
	"net/http"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/models"
	"waterzone/services"

	"github.com/gin-gonic/gin"
)

type SignInRequest struct {
	FullName  string          `json:"full_name" binding:"required"`
	PhoneE164 string          `json:"phone_e164" binding:"required,e164"`
	Role      models.UserRole `json:"role" binding:"required"`
}

// SignIn gets or creates a user by phone and returns a JWT. Placeholder
// auth: no OTP or password — the phone number is taken at face value.
func SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := services.SignIn(config.DB, req.FullName, req.PhoneE164, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondError(c, services.Internal("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe returns the authenticated user's profile
func GetMe(c *gin.Context) {
	user, err := services.GetUser(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
