package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart lives in Redis, keyed by user; it is a convenience surface and is not
// consulted at checkout, which takes an explicit item list.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	SKUID    uuid.UUID `json:"sku_id"`
	Quantity int       `json:"quantity"`
}
