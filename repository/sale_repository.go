package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
)

// SaleRepository defines data access for product sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.Sale, error)
	ActiveForProduct(ctx context.Context, productID uuid.UUID, at time.Time) (*models.Sale, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSaleRepository struct {
	db *gorm.DB
}

func NewGormSaleRepository(db *gorm.DB) SaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// ActiveForProduct returns the active sale covering the given instant, or
// gorm.ErrRecordNotFound when none applies.
func (r *GormSaleRepository) ActiveForProduct(ctx context.Context, productID uuid.UUID, at time.Time) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND active = true", productID).
		Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at >= ?)", at, at).
		Order("created_at DESC").
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, "id = ?", id).Error
}
