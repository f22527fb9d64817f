package models

import "time"

// VerificationStatus is the administrative approval state of a driver account
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

type Driver struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	UserID          uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	User            User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	VehiclePlate    string             `json:"vehicle_plate" gorm:"not null"`
	VehicleType     string             `json:"vehicle_type" gorm:"not null"`
	Verification    VerificationStatus `json:"verification_status" gorm:"not null;default:'pending'"`
	DocsMetadata    string             `json:"docs_metadata"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// DriverStatus holds a driver's presence flag and last known location.
// One row per driver, created at registration and mutated only through
// the presence toggle and the location heartbeat.
type DriverStatus struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DriverID   uint      `json:"driver_id" gorm:"uniqueIndex;not null"`
	IsOnline   bool      `json:"is_online" gorm:"not null;default:false;index"`
	LastLat    *float64  `json:"last_lat,omitempty"`
	LastLng    *float64  `json:"last_lng,omitempty"`
	LastSeenAt time.Time `json:"last_seen_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OnlineDriver pairs a driver with its presence row for assignment scans
type OnlineDriver struct {
	Driver Driver       `json:"driver"`
	Status DriverStatus `json:"status"`
}
