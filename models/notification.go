package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeOrderStatus = "order_status"
	NotificationTypeSale        = "sale"
)

// Notification is a fire-and-forget, user-facing message.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Title     string     `gorm:"not null" json:"title"`
	Message   string     `gorm:"not null" json:"message"`
	Type      string     `gorm:"type:varchar(30);not null" json:"type"`
	Read      bool       `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// NotificationFilter narrows a user's notification listing.
type NotificationFilter struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}
