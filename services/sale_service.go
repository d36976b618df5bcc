package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	aws_pkg "github.com/AYATON2/shoes-sub000/pkg/aws"
	"github.com/AYATON2/shoes-sub000/repository"
)

// CreateSaleRequest is the payload for creating a product sale.
type CreateSaleRequest struct {
	ProductID   uuid.UUID  `json:"product_id" binding:"required"`
	Description string     `json:"description" binding:"required"`
	PercentOff  float64    `json:"percent_off" binding:"required,gt=0,lte=100"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type saleEvent struct {
	EventType   string    `json:"event_type"`
	SaleID      string    `json:"sale_id"`
	ProductID   string    `json:"product_id"`
	Description string    `json:"description"`
	PercentOff  float64   `json:"percent_off"`
	Timestamp   time.Time `json:"timestamp"`
}

// SaleService manages product sales. Activation fans a notification out to
// every customer.
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	notifier    *NotificationService
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	notifier *NotificationService,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		notifier:    notifier,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

func (s *SaleService) Create(ctx context.Context, actor Actor, req *CreateSaleRequest) (*models.Sale, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create sale"}
	}
	if !canManageProduct(actor, product) {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	sale := &models.Sale{
		ProductID:   req.ProductID,
		Description: req.Description,
		PercentOff:  req.PercentOff,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.logger.Error("Failed to create sale", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create sale"}
	}
	return sale, nil
}

func (s *SaleService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Sale, *ServiceError) {
	sales, err := s.saleRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch sales"}
	}
	return sales, nil
}

// Activate turns a sale on and broadcasts it to all customers.
func (s *SaleService) Activate(ctx context.Context, actor Actor, saleID uuid.UUID) (*models.Sale, *ServiceError) {
	sale, product, svcErr := s.loadSaleForManage(ctx, actor, saleID)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.saleRepo.SetActive(ctx, saleID, true); err != nil {
		s.logger.Error("Failed to activate sale", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to activate sale"}
	}
	sale.Active = true

	title := "Sale: " + product.Name
	message := fmt.Sprintf("%s: now %.2f (%.0f%% off %s)",
		sale.Description, sale.SalePrice(product.Price), sale.PercentOff, product.Name)
	if err := s.notifier.BroadcastToCustomers(ctx, title, message, models.NotificationTypeSale); err != nil {
		// Fan-out is best-effort; the sale is active either way.
		s.logger.Warn("Sale broadcast failed", zap.String("sale_id", saleID.String()), zap.Error(err))
	}

	s.publishSaleEvent(ctx, sale)

	s.logger.Info("Sale activated",
		zap.String("sale_id", saleID.String()),
		zap.String("product_id", sale.ProductID.String()),
	)
	return sale, nil
}

// Deactivate turns a sale off. No fan-out.
func (s *SaleService) Deactivate(ctx context.Context, actor Actor, saleID uuid.UUID) (*models.Sale, *ServiceError) {
	sale, _, svcErr := s.loadSaleForManage(ctx, actor, saleID)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.saleRepo.SetActive(ctx, saleID, false); err != nil {
		s.logger.Error("Failed to deactivate sale", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to deactivate sale"}
	}
	sale.Active = false
	return sale, nil
}

func (s *SaleService) Delete(ctx context.Context, actor Actor, saleID uuid.UUID) *ServiceError {
	_, _, svcErr := s.loadSaleForManage(ctx, actor, saleID)
	if svcErr != nil {
		return svcErr
	}
	if err := s.saleRepo.Delete(ctx, saleID); err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to delete sale"}
	}
	return nil
}

func (s *SaleService) loadSaleForManage(ctx context.Context, actor Actor, saleID uuid.UUID) (*models.Sale, *models.Product, *ServiceError) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &ServiceError{StatusCode: 404, Message: "Sale not found"}
		}
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch sale"}
	}

	product, err := s.productRepo.FindByID(ctx, sale.ProductID)
	if err != nil {
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch sale"}
	}
	if !canManageProduct(actor, product) {
		return nil, nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}
	return sale, product, nil
}

func (s *SaleService) publishSaleEvent(ctx context.Context, sale *models.Sale) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}
	event := saleEvent{
		EventType:   "sale.activated",
		SaleID:      sale.ID.String(),
		ProductID:   sale.ProductID.String(),
		Description: sale.Description,
		PercentOff:  sale.PercentOff,
		Timestamp:   time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Warn("SNS publish failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
	}
}
