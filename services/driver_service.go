package services

import (
	"errors"
	"time"

	"waterzone/logger"
	"waterzone/models"

	"gorm.io/gorm"
)

// RegisterDriver creates a driver record and its paired presence row.
// Idempotent: re-registration returns the existing driver unchanged.
// Requires role "driver". Verification is auto-approved so no admin
// dashboard is needed to get a driver working.
func RegisterDriver(db *gorm.DB, userID uint, vehiclePlate, vehicleType, docsMetadata string) (*models.Driver, error) {
	if _, err := RequireRole(db, userID, models.RoleDriver); err != nil {
		return nil, err
	}

	var existing models.Driver
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(err.Error())
	}

	driver := models.Driver{
		UserID:       userID,
		VehiclePlate: vehiclePlate,
		VehicleType:  vehicleType,
		Verification: models.VerificationApproved,
		DocsMetadata: docsMetadata,
	}
	if err := db.Create(&driver).Error; err != nil {
		return nil, Internal("Failed to register driver")
	}

	now := time.Now()
	status := models.DriverStatus{
		DriverID:   driver.ID,
		IsOnline:   false,
		LastSeenAt: now,
		UpdatedAt:  now,
	}
	if err := db.Create(&status).Error; err != nil {
		return nil, Internal("Failed to create driver status")
	}

	log := logger.WithUserID(userID)
	log.Info().Uint("driver_id", driver.ID).Msg("driver registered")
	return &driver, nil
}

// GetDriverByUser returns the driver record for a user id
func GetDriverByUser(db *gorm.DB, userID uint) (*models.Driver, error) {
	var driver models.Driver
	if err := db.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Driver not registered")
		}
		return nil, Internal(err.Error())
	}
	return &driver, nil
}

// GetDriverStatus returns the presence row for a driver id
func GetDriverStatus(db *gorm.DB, driverID uint) (*models.DriverStatus, error) {
	var status models.DriverStatus
	if err := db.Where("driver_id = ?", driverID).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Driver status not found")
		}
		return nil, Internal(err.Error())
	}
	return &status, nil
}

// UpdatePresence toggles online/offline and optionally updates location.
// Registration is a prerequisite: missing driver or status rows fail
// NotFound rather than being created on the fly.
func UpdatePresence(db *gorm.DB, userID uint, isOnline bool, lat, lng *float64) (*models.DriverStatus, error) {
	if _, err := RequireRole(db, userID, models.RoleDriver); err != nil {
		return nil, err
	}
	driver, err := GetDriverByUser(db, userID)
	if err != nil {
		return nil, err
	}
	status, err := GetDriverStatus(db, driver.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status.IsOnline = isOnline
	if lat != nil && lng != nil {
		status.LastLat = lat
		status.LastLng = lng
	}
	status.LastSeenAt = now
	status.UpdatedAt = now
	if err := db.Save(status).Error; err != nil {
		return nil, Internal("Failed to update driver status")
	}

	log := logger.WithUserID(userID)
	log.Info().Bool("is_online", isOnline).Msg("driver presence updated")
	return status, nil
}

// UpdateLocation is the driver location heartbeat. Unlike the presence
// toggle it always overwrites the last known location.
func UpdateLocation(db *gorm.DB, userID uint, lat, lng float64) (*models.DriverStatus, error) {
	if _, err := RequireRole(db, userID, models.RoleDriver); err != nil {
		return nil, err
	}
	driver, err := GetDriverByUser(db, userID)
	if err != nil {
		return nil, err
	}
	status, err := GetDriverStatus(db, driver.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status.LastLat = &lat
	status.LastLng = &lng
	status.LastSeenAt = now
	status.UpdatedAt = now
	if err := db.Save(status).Error; err != nil {
		return nil, Internal("Failed to update driver location")
	}
	return status, nil
}

// ListOnlineDrivers returns online presence rows joined to their approved
// drivers, in stable id order. Drivers that are missing or unverified are
// silently excluded — this scan is the assignment policy's input.
func ListOnlineDrivers(db *gorm.DB) ([]models.OnlineDriver, error) {
	var statuses []models.DriverStatus
	if err := db.Where("is_online = ?", true).Order("id asc").Find(&statuses).Error; err != nil {
		return nil, Internal(err.Error())
	}

	var online []models.OnlineDriver
	for _, status := range statuses {
		var driver models.Driver
		if err := db.First(&driver, status.DriverID).Error; err != nil {
			continue
		}
		if driver.Verification != models.VerificationApproved {
			continue
		}
		online = append(online, models.OnlineDriver{Driver: driver, Status: status})
	}
	return online, nil
}

// SetVerification lets an admin approve or reject a driver. No workflow
// validation beyond the role check.
func SetVerification(db *gorm.DB, adminUserID, driverID uint, verification models.VerificationStatus, rejectionReason *string) (*models.Driver, error) {
	if _, err := RequireRole(db, adminUserID, models.RoleAdmin); err != nil {
		return nil, err
	}
	if verification != models.VerificationApproved && verification != models.VerificationRejected {
		return nil, Validation("Verification status must be approved or rejected")
	}

	var driver models.Driver
	if err := db.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Driver not found")
		}
		return nil, Internal(err.Error())
	}

	driver.Verification = verification
	driver.RejectionReason = rejectionReason
	if err := db.Save(&driver).Error; err != nil {
		return nil, Internal("Failed to update driver verification")
	}

	log := logger.WithUserID(adminUserID)
	log.Info().
		Uint("driver_id", driverID).
		Str("verification", string(verification)).
		Msg("driver verification updated")
	return &driver, nil
}
