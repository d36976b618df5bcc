package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a seller-owned catalog entry. Purchasable variants live on SKU.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Brand       string         `gorm:"size:100" json:"brand"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	ImageURL    string         `json:"image_url,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	SKUs        []SKU          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"skus,omitempty"`
}

// SKU is a specific (size, color, width) variant of a product with its own
// stock count. Price is derived from the parent product.
type SKU struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Size      string    `gorm:"size:20;not null" json:"size"`
	Color     string    `gorm:"size:50;not null" json:"color"`
	Width     string    `gorm:"size:20" json:"width"`
	Stock     int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Sale is a seller-created discount on a product. A nil bound means the
// sale is unbounded on that side and is stored as NULL.
type Sale struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Description string     `gorm:"not null" json:"description"`
	PercentOff  float64    `gorm:"not null" json:"percent_off"`
	Active      bool       `gorm:"not null;default:false" json:"active"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AppliesAt reports whether the sale is active at the given instant.
func (s *Sale) AppliesAt(at time.Time) bool {
	if !s.Active {
		return false
	}
	if s.StartsAt != nil && at.Before(*s.StartsAt) {
		return false
	}
	if s.EndsAt != nil && at.After(*s.EndsAt) {
		return false
	}
	return true
}

// SalePrice returns the discounted unit price.
func (s *Sale) SalePrice(price float64) float64 {
	return price * (1 - s.PercentOff/100)
}
