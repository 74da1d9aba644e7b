package models

import "time"

// Response projections for the read API. Each profile embeds its owning user,
// bookings embed both users, feedback embeds its booking.

type UserResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Role     UserRole `json:"role"`
}

type WorkerProfileResponse struct {
	ID              uint         `json:"id"`
	User            UserResponse `json:"user"`
	ServiceType     string       `json:"service_type"`
	ExperienceYears int          `json:"experience_years"`
	HourlyRate      float64      `json:"hourly_rate"`
	Location        string       `json:"location"`
	Status          WorkerStatus `json:"status"`
	PictureURL      *string      `json:"picture_url"`
	AvgRating       *float64     `json:"avg_rating"`
}

type CustomerProfileResponse struct {
	ID       uint         `json:"id"`
	User     UserResponse `json:"user"`
	Location string       `json:"location"`
	Phone    string       `json:"phone"`
}

type BookingResponse struct {
	ID       uint          `json:"id"`
	Customer UserResponse  `json:"customer"`
	Worker   UserResponse  `json:"worker"`
	Service  string        `json:"service"`
	Date     time.Time     `json:"date"`
	Status   BookingStatus `json:"status"`
	Notes    string        `json:"notes"`
}

type FeedbackResponse struct {
	ID      uint            `json:"id"`
	Booking BookingResponse `json:"booking"`
	Rating  int             `json:"rating"`
	Comment string          `json:"comment"`
}

// NewUserResponse projects a user onto its API shape
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
		Role:     u.Role,
	}
}

// NewWorkerProfileResponse projects a worker profile with its owning user.
// avgRating is nil when the worker has no feedback yet.
func NewWorkerProfileResponse(p WorkerProfile, avgRating *float64) WorkerProfileResponse {
	return WorkerProfileResponse{
		ID:              p.ID,
		User:            NewUserResponse(p.User),
		ServiceType:     p.ServiceType,
		ExperienceYears: p.ExperienceYears,
		HourlyRate:      p.HourlyRate,
		Location:        p.Location,
		Status:          p.Status,
		PictureURL:      p.PictureURL,
		AvgRating:       avgRating,
	}
}

// NewCustomerProfileResponse projects a customer profile with its owning user
func NewCustomerProfileResponse(p CustomerProfile) CustomerProfileResponse {
	return CustomerProfileResponse{
		ID:       p.ID,
		User:     NewUserResponse(p.User),
		Location: p.Location,
		Phone:    p.Phone,
	}
}

// NewBookingResponse projects a booking with both linked users
func NewBookingResponse(b Booking) BookingResponse {
	return BookingResponse{
		ID:       b.ID,
		Customer: NewUserResponse(b.Customer),
		Worker:   NewUserResponse(b.Worker),
		Service:  b.Service,
		Date:     b.Date,
		Status:   b.Status,
		Notes:    b.Notes,
	}
}

// NewFeedbackResponse projects feedback with its nested booking
func NewFeedbackResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:      f.ID,
		Booking: NewBookingResponse(f.Booking),
		Rating:  f.Rating,
		Comment: f.Comment,
	}
}
