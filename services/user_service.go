package services

import (
	"errors"

	"waterzone/models"

	"gorm.io/gorm"
)

// RequireRole fetches the user and verifies it holds one of the accepted
// roles. This is the sole authorization mechanism: every privileged
// operation calls it before touching persistent state. No side effects.
func RequireRole(db *gorm.DB, userID uint, roles ...models.UserRole) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal(err.Error())
	}
	for _, r := range roles {
		if user.Role == r {
			return &user, nil
		}
	}
	return nil, Forbidden("Forbidden: wrong role")
}

// SignIn gets or creates a user by phone (placeholder auth — no OTP).
// The role is fixed at first creation; a re-sign-in returns the existing
// account unchanged regardless of the requested role.
func SignIn(db *gorm.DB, fullName, phoneE164 string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, Validation("Invalid role. Must be: customer, driver, or admin")
	}

	var existing models.User
	err := db.Where("phone_e164 = ?", phoneE164).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(err.Error())
	}

	user := models.User{
		FullName:  fullName,
		PhoneE164: phoneE164,
		Role:      role,
		Status:    "active",
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, Internal("Failed to create user")
	}
	return &user, nil
}

// GetUser returns a user by id
func GetUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal(err.Error())
	}
	return &user, nil
}

// GetUserByPhone returns a user by phone, or NotFound
func GetUserByPhone(db *gorm.DB, phoneE164 string) (*models.User, error) {
	var user models.User
	if err := db.Where("phone_e164 = ?", phoneE164).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal(err.Error())
	}
	return &user, nil
}
