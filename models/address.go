package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is one entry in a user's address book.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Label      string    `gorm:"type:varchar(20);default:'shipping'" json:"label"`
	Street     string    `gorm:"not null" json:"street"`
	Barangay   string    `json:"barangay,omitempty"`
	City       string    `gorm:"not null" json:"city"`
	Province   string    `gorm:"not null" json:"province"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Country    string    `gorm:"not null;default:'PH'" json:"country"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
