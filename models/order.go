package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusReceived     OrderStatus = "received"
	OrderStatusQualityCheck OrderStatus = "quality_check"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

const (
	PaymentMethodGCash = "gcash"
	PaymentMethodCOD   = "cod"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// ShippingFee is the flat fee added to every order total.
const ShippingFee = 50.00

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusReceived, OrderStatusQualityCheck, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodGCash || m == PaymentMethodCOD
}

// Order is one checkout. Line items and the payment row are created
// atomically with the header and never mutated afterwards; only Status
// changes over the order's lifetime.
type Order struct {
	ID                uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	ShippingAddressID uuid.UUID   `gorm:"type:uuid;not null" json:"shipping_address_id"`
	Status            OrderStatus `gorm:"type:varchar(20);not null;default:'received';index" json:"status"`
	Total             float64     `gorm:"not null" json:"total"`
	ShippingFee       float64     `gorm:"not null" json:"shipping_fee"`
	PaymentMethod     string      `gorm:"type:varchar(20);not null" json:"payment_method"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	Payment           *Payment    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// OrderItem is an immutable snapshot of one SKU purchase. Price is the unit
// price captured at purchase time and must not follow later price changes.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	SKUID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sku_id"`
	Quantity int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price    float64   `gorm:"not null" json:"price"`
}

// Payment is one-to-one with Order.
type Payment struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Method     string     `gorm:"type:varchar(20);not null" json:"method"`
	Amount     float64    `gorm:"not null" json:"amount"`
	Status     string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	VerifiedBy *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
