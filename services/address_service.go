package services

import (
	"errors"

	"waterzone/models"

	"gorm.io/gorm"
)

// CreateAddress saves a delivery address for a customer. Marking it
// default clears the default flag on the user's other addresses.
func CreateAddress(db *gorm.DB, userID uint, label, addressText string, lat, lng *float64, isDefault bool) (*models.Address, error) {
	if _, err := RequireRole(db, userID, models.RoleCustomer); err != nil {
		return nil, err
	}
	if addressText == "" {
		return nil, Validation("Address text is required")
	}

	if isDefault {
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
			return nil, Internal(err.Error())
		}
	}

	addr := models.Address{
		UserID:      userID,
		Label:       label,
		AddressText: addressText,
		Lat:         lat,
		Lng:         lng,
		IsDefault:   isDefault,
	}
	if err := db.Create(&addr).Error; err != nil {
		return nil, Internal("Failed to save address")
	}
	return &addr, nil
}

// ListAddresses returns a user's saved addresses, default first
func ListAddresses(db *gorm.DB, userID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := db.Where("user_id = ?", userID).Order("is_default desc, updated_at desc").Find(&addrs).Error; err != nil {
		return nil, Internal(err.Error())
	}
	return addrs, nil
}

// SetDefaultAddress marks one of the user's addresses as default
func SetDefaultAddress(db *gorm.DB, userID, addressID uint) (*models.Address, error) {
	addr, err := getOwnAddress(db, userID, addressID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
		return nil, Internal(err.Error())
	}
	addr.IsDefault = true
	if err := db.Save(addr).Error; err != nil {
		return nil, Internal(err.Error())
	}
	return addr, nil
}

// DeleteAddress removes one of the user's saved addresses
func DeleteAddress(db *gorm.DB, userID, addressID uint) error {
	addr, err := getOwnAddress(db, userID, addressID)
	if err != nil {
		return err
	}
	if err := db.Delete(addr).Error; err != nil {
		return Internal(err.Error())
	}
	return nil
}

func getOwnAddress(db *gorm.DB, userID, addressID uint) (*models.Address, error) {
	var addr models.Address
	if err := db.First(&addr, addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Address not found")
		}
		return nil, Internal(err.Error())
	}
	if addr.UserID != userID {
		return nil, Forbidden("This address does not belong to you")
	}
	return &addr, nil
}
