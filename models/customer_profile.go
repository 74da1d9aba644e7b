package models

import "time"

// CustomerProfile holds customer contact details, owned 1:1 by a user with
// role=customer.
type CustomerProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Location  string    `json:"location" gorm:"size:200"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the CustomerProfile model
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}

// NewDefaultCustomerProfile builds the profile a customer starts with: empty
// location, phone copied from the account.
func NewDefaultCustomerProfile(user User) CustomerProfile {
	return CustomerProfile{
		UserID:   user.ID,
		Location: "",
		Phone:    user.Phone,
	}
}

// CustomerProfileUpdateRequest represents the customer profile update form
type CustomerProfileUpdateRequest struct {
	Location string `json:"location"`
	Phone    string `json:"phone"`
}
