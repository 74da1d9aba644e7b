package models

import (
	"time"
)

// WorkerStatus represents a worker's current availability
type WorkerStatus string

const (
	WorkerAvailable WorkerStatus = "available"
	WorkerBusy      WorkerStatus = "busy"
	WorkerOnLeave   WorkerStatus = "on_leave"
)

// IsValid checks if the status is one of the known availability values
func (s WorkerStatus) IsValid() bool {
	switch s {
	case WorkerAvailable, WorkerBusy, WorkerOnLeave:
		return true
	default:
		return false
	}
}

// DefaultServiceType is assigned when a worker registers without one
const DefaultServiceType = "General"

// WorkerProfile represents a worker's professional profile, owned 1:1 by a
// user with role=worker.
type WorkerProfile struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	UserID          uint         `json:"user_id" gorm:"uniqueIndex;not null"`
	ServiceType     string       `json:"service_type" gorm:"size:100"`
	ExperienceYears int          `json:"experience_years" gorm:"default:0;check:experience_years >= 0"`
	HourlyRate      float64      `json:"hourly_rate" gorm:"type:decimal(10,2);default:0;check:hourly_rate >= 0"`
	Location        string       `json:"location" gorm:"size:255"`
	Status          WorkerStatus `json:"status" gorm:"type:varchar(20);not null;default:'available';check:status IN ('available','busy','on_leave')"`
	PictureURL      *string      `json:"picture_url" gorm:"size:500"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the WorkerProfile model
func (WorkerProfile) TableName() string {
	return "worker_profiles"
}

// NewDefaultWorkerProfile builds the profile a worker starts with: the given
// service type (or DefaultServiceType when blank), zero experience and rate,
// the user's location, status available.
func NewDefaultWorkerProfile(user User, serviceType string) WorkerProfile {
	if serviceType == "" {
		serviceType = DefaultServiceType
	}
	return WorkerProfile{
		UserID:          user.ID,
		ServiceType:     serviceType,
		ExperienceYears: 0,
		HourlyRate:      0,
		Location:        user.Location,
		Status:          WorkerAvailable,
	}
}

// WorkerProfileUpdateRequest represents the request structure for updating a
// worker profile
type WorkerProfileUpdateRequest struct {
	ServiceType     string  `json:"service_type" binding:"required"`
	ExperienceYears int     `json:"experience_years" binding:"min=0"`
	HourlyRate      float64 `json:"hourly_rate" binding:"min=0"`
	Location        string  `json:"location"`
	Status          string  `json:"status" binding:"omitempty,oneof=available busy on_leave"`
}

// AvailabilityRequest represents the restricted status-only update
type AvailabilityRequest struct {
	Status string `json:"status" binding:"required,oneof=available busy on_leave"`
}
