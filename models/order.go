package models

import "time"

// OrderStatus represents all possible states of a water delivery order
type OrderStatus string

const (
	StatusRequested OrderStatus = "requested"
	StatusAssigned  OrderStatus = "assigned"
	StatusAccepted  OrderStatus = "accepted"
	StatusEnroute   OrderStatus = "enroute"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusAssigned, StatusAccepted, StatusEnroute, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave this state
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus tracks whether an order has been settled
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Order struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	CustomerID       uint          `json:"customer_id" gorm:"not null;index"`
	Customer         User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	AssignedDriverID *uint         `json:"assigned_driver_id" gorm:"index"`
	AssignedDriver   *Driver       `json:"assigned_driver,omitempty" gorm:"foreignKey:AssignedDriverID"`
	Litres           float64       `json:"litres" gorm:"not null"`
	AddressText      string        `json:"address_text" gorm:"not null"`
	Lat              *float64      `json:"lat,omitempty"`
	Lng              *float64      `json:"lng,omitempty"`
	Notes            string        `json:"notes"`
	Status           OrderStatus   `json:"status" gorm:"not null;default:'requested';index"`
	PaymentMethod    string        `json:"payment_method" gorm:"not null"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"not null;default:'unpaid'"`
	RequestedAt      time.Time     `json:"requested_at"`
	AssignedAt       *time.Time    `json:"assigned_at,omitempty"`
	AcceptedAt       *time.Time    `json:"accepted_at,omitempty"`
	EnrouteAt        *time.Time    `json:"enroute_at,omitempty"`
	DeliveredAt      *time.Time    `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"index"`
}

// Active reports whether the order still needs attention from either side
func (o *Order) Active() bool {
	return !o.Status.Terminal()
}
