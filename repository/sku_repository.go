package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
)

// SKURepository defines data access for SKUs. Stock decrements at checkout
// go through OrderRepository.CreateWithItems so they stay inside the order
// transaction; SetStock here is the seller's overwrite.
type SKURepository interface {
	Create(ctx context.Context, sku *models.SKU) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SKU, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.SKU, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
	ReferencedByOrderItem(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSKURepository struct {
	db *gorm.DB
}

func NewGormSKURepository(db *gorm.DB) SKURepository {
	return &GormSKURepository{db: db}
}

func (r *GormSKURepository) Create(ctx context.Context, sku *models.SKU) error {
	return r.db.WithContext(ctx).Create(sku).Error
}

func (r *GormSKURepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SKU, error) {
	var sku models.SKU
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&sku, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sku, nil
}

func (r *GormSKURepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.SKU, error) {
	var skus []models.SKU
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id IN ?", ids).
		Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

func (r *GormSKURepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	return r.db.WithContext(ctx).
		Model(&models.SKU{}).
		Where("id = ?", id).
		Update("stock", stock).Error
}

func (r *GormSKURepository) ReferencedByOrderItem(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("sku_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSKURepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SKU{}, "id = ?", id).Error
}
