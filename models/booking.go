package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transitions may leave this status.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking links one customer to one worker for a service at a time. Bookings
// are never deleted in normal flow, only cancelled.
type Booking struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	WorkerID   uint          `json:"worker_id" gorm:"not null;index"`
	CustomerID uint          `json:"customer_id" gorm:"not null;index"`
	Service    string        `json:"service" gorm:"size:100;not null"`
	Date       time.Time     `json:"date" gorm:"not null"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','completed','cancelled')"`
	Notes      string        `json:"notes" gorm:"size:1000"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Worker   User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Customer User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingCreateRequest represents the booking creation form
type BookingCreateRequest struct {
	WorkerProfileID uint      `json:"worker_profile_id" binding:"required"`
	Service         string    `json:"service" binding:"required"`
	Date            time.Time `json:"date" binding:"required"`
	Notes           string    `json:"notes"`
}
