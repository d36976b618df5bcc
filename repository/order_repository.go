package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AYATON2/shoes-sub000/models"
)

// ErrInsufficientStock is returned when a conditional stock decrement
// matches zero rows, i.e. another checkout got there first or the SKU never
// had enough stock. The enclosing transaction is rolled back.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockDecrement is one per-SKU decrement applied inside the checkout
// transaction.
type StockDecrement struct {
	SKUID    uuid.UUID
	Quantity int
}

// OrderRepository defines data access for orders, their items and payments.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, decrements []StockDecrement) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindBySellerID(ctx context.Context, sellerID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	SellerInOrder(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems executes the whole checkout write set in one transaction:
// a conditional atomic decrement per SKU (stock = stock - qty only where
// stock >= qty, so two concurrent checkouts cannot both win the last unit),
// then the order header, line items and payment row. Any failure rolls back
// everything, including the decrements.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, decrements []StockDecrement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range decrements {
			res := tx.Model(&models.SKU{}).
				Where("id = ? AND stock >= ?", d.SKUID, d.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", d.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		for i := range order.OrderItems {
			order.OrderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&order.OrderItems).Error; err != nil {
			return err
		}

		order.Payment.OrderID = order.ID
		if err := tx.Create(order.Payment).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Payment").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Preload("Payment").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindBySellerID returns orders containing at least one line item whose
// product belongs to the seller.
func (r *GormOrderRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	sub := r.db.WithContext(ctx).
		Table("order_items").
		Select("DISTINCT order_items.order_id").
		Joins("JOIN skus ON skus.id = order_items.sku_id").
		Joins("JOIN products ON products.id = skus.product_id").
		Where("products.seller_id = ?", sellerID)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN (?)", sub)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Preload("Payment").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Preload("Payment").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// SellerInOrder reports whether the order has a line item whose product's
// seller is sellerID. Single indexed join, no relationship traversal.
func (r *GormOrderRepository) SellerInOrder(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN skus ON skus.id = order_items.sku_id").
		Joins("JOIN products ON products.id = skus.product_id").
		Where("order_items.order_id = ? AND products.seller_id = ?", orderID, sellerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
