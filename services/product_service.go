package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

// CreateProductRequest is the payload for creating a catalog entry.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
}

// UpdateProductRequest is the payload for updating a catalog entry.
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"omitempty,gt=0"`
	ImageURL    string  `json:"image_url"`
}

// CreateSKURequest is the payload for adding a variant to a product.
type CreateSKURequest struct {
	Size  string `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
	Width string `json:"width"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// ProductListResponse is a paginated product listing.
type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// ProductService implements catalog management. Sellers manage their own
// products; admins are unrestricted.
type ProductService struct {
	productRepo repository.ProductRepository
	skuRepo     repository.SKURepository
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, skuRepo repository.SKURepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		skuRepo:     skuRepo,
		logger:      logger,
	}
}

// canManageProduct: the owning seller or an admin.
func canManageProduct(actor Actor, product *models.Product) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Role == models.RoleSeller && product.SellerID == actor.ID
}

func (s *ProductService) Create(ctx context.Context, actor Actor, req *CreateProductRequest) (*models.Product, *ServiceError) {
	if actor.Role != models.RoleSeller && actor.Role != models.RoleAdmin {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	product := &models.Product{
		SellerID:    actor.ID,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("seller_id", actor.ID.String()))
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, category string, page, limit int) (*ProductListResponse, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := s.productRepo.FindAll(ctx, category, page, limit)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch products"}
	}
	return &ProductListResponse{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, limit int) (*ProductListResponse, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := s.productRepo.FindBySellerID(ctx, sellerID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list seller products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch products"}
	}
	return &ProductListResponse{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *UpdateProductRequest) (*models.Product, *ServiceError) {
	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if !canManageProduct(actor, product) {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) *ServiceError {
	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return svcErr
	}
	if !canManageProduct(actor, product) {
		return &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}
	return nil
}

// CreateSKU adds a variant to one of the actor's products.
func (s *ProductService) CreateSKU(ctx context.Context, actor Actor, productID uuid.UUID, req *CreateSKURequest) (*models.SKU, *ServiceError) {
	product, svcErr := s.Get(ctx, productID)
	if svcErr != nil {
		return nil, svcErr
	}
	if !canManageProduct(actor, product) {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	sku := &models.SKU{
		ProductID: productID,
		Size:      req.Size,
		Color:     req.Color,
		Width:     req.Width,
		Stock:     req.Stock,
	}
	if err := s.skuRepo.Create(ctx, sku); err != nil {
		s.logger.Error("Failed to create SKU", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create SKU"}
	}
	return sku, nil
}

// SetSKUStock overwrites a SKU's stock count (seller stock edit).
func (s *ProductService) SetSKUStock(ctx context.Context, actor Actor, skuID uuid.UUID, stock int) (*models.SKU, *ServiceError) {
	if stock < 0 {
		return nil, &ServiceError{StatusCode: 422, Message: "Stock cannot be negative"}
	}

	sku, err := s.skuRepo.FindByID(ctx, skuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "SKU not found"}
		}
		s.logger.Error("Failed to fetch SKU", zap.String("sku_id", skuID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update SKU"}
	}
	if sku.Product == nil || !canManageProduct(actor, sku.Product) {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	if err := s.skuRepo.SetStock(ctx, skuID, stock); err != nil {
		s.logger.Error("Failed to set SKU stock", zap.String("sku_id", skuID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update SKU"}
	}
	sku.Stock = stock
	return sku, nil
}

// DeleteSKU removes a variant unless an order item references it.
func (s *ProductService) DeleteSKU(ctx context.Context, actor Actor, skuID uuid.UUID) *ServiceError {
	sku, err := s.skuRepo.FindByID(ctx, skuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "SKU not found"}
		}
		return &ServiceError{StatusCode: 500, Message: "Failed to delete SKU"}
	}
	if sku.Product == nil || !canManageProduct(actor, sku.Product) {
		return &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	referenced, err := s.skuRepo.ReferencedByOrderItem(ctx, skuID)
	if err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to delete SKU"}
	}
	if referenced {
		return &ServiceError{StatusCode: 422, Message: "SKU is referenced by existing orders"}
	}

	if err := s.skuRepo.Delete(ctx, skuID); err != nil {
		s.logger.Error("Failed to delete SKU", zap.String("sku_id", skuID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete SKU"}
	}
	return nil
}
