package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	aws_pkg "github.com/AYATON2/shoes-sub000/pkg/aws"
	"github.com/AYATON2/shoes-sub000/repository"
)

// PlaceOrderItem is one requested line at checkout.
type PlaceOrderItem struct {
	SKUID    uuid.UUID `json:"sku_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items             []PlaceOrderItem `json:"items" binding:"required,dive"`
	ShippingAddressID uuid.UUID        `json:"shipping_address_id" binding:"required"`
	PaymentMethod     string           `json:"payment_method" binding:"required"`
}

// OrderListResponse is a paginated order listing.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// InvoiceResponse is the invoice view of one order.
type InvoiceResponse struct {
	Order       *models.Order      `json:"order"`
	Items       []models.OrderItem `json:"items"`
	Total       float64            `json:"total"`
	ShippingFee float64            `json:"shipping_fee"`
}

// OrderService implements checkout and the order status workflow.
type OrderService struct {
	orderRepo   repository.OrderRepository
	skuRepo     repository.SKURepository
	addressRepo repository.AddressRepository
	saleRepo    repository.SaleRepository
	notifier    *NotificationService
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	skuRepo repository.SKURepository,
	addressRepo repository.AddressRepository,
	saleRepo repository.SaleRepository,
	notifier *NotificationService,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		skuRepo:     skuRepo,
		addressRepo: addressRepo,
		saleRepo:    saleRepo,
		notifier:    notifier,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// PlaceOrder converts a list of (sku, quantity) lines into a persisted order
// with items and a payment row, decrementing stock atomically. Any failure
// leaves no partial effects.
func (s *OrderService) PlaceOrder(ctx context.Context, actor Actor, req *PlaceOrderRequest) (*models.Order, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: 422, Message: "At least one item is required"}
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, &ServiceError{StatusCode: 422, Message: "Quantity must be at least 1"}
		}
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, &ServiceError{StatusCode: 422, Message: "Unsupported payment method"}
	}

	address, err := s.addressRepo.FindByID(ctx, req.ShippingAddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 422, Message: "Unknown shipping address"}
		}
		s.logger.Error("Failed to load shipping address", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}
	if address.UserID != actor.ID {
		return nil, &ServiceError{StatusCode: 422, Message: "Shipping address does not belong to you"}
	}

	skuIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		skuIDs = append(skuIDs, item.SKUID)
	}
	skus, err := s.skuRepo.FindByIDs(ctx, skuIDs)
	if err != nil {
		s.logger.Error("Failed to load SKUs for checkout", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}
	skuByID := make(map[uuid.UUID]models.SKU, len(skus))
	for _, sku := range skus {
		skuByID[sku.ID] = sku
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	decrements := make([]repository.StockDecrement, 0, len(req.Items))
	for _, item := range req.Items {
		sku, ok := skuByID[item.SKUID]
		if !ok {
			return nil, &ServiceError{StatusCode: 422, Message: "Unknown SKU " + item.SKUID.String()}
		}
		if sku.Product == nil {
			s.logger.Error("SKU has no parent product", zap.String("sku_id", sku.ID.String()))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
		}
		// Fail fast; the conditional decrement in the transaction is what
		// actually guards against concurrent oversell.
		if sku.Stock < item.Quantity {
			return nil, &ServiceError{StatusCode: 400, Message: "Insufficient stock"}
		}

		unitPrice := sku.Product.Price
		total += unitPrice * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			SKUID:    item.SKUID,
			Quantity: item.Quantity,
			Price:    unitPrice,
		})
		decrements = append(decrements, repository.StockDecrement{
			SKUID:    item.SKUID,
			Quantity: item.Quantity,
		})
	}
	total += models.ShippingFee

	paymentStatus := models.PaymentStatusPending
	if req.PaymentMethod == models.PaymentMethodGCash {
		paymentStatus = models.PaymentStatusCompleted
	}

	order := &models.Order{
		UserID:            actor.ID,
		ShippingAddressID: req.ShippingAddressID,
		Status:            models.OrderStatusReceived,
		Total:             total,
		ShippingFee:       models.ShippingFee,
		PaymentMethod:     req.PaymentMethod,
		OrderItems:        orderItems,
		Payment: &models.Payment{
			Method: req.PaymentMethod,
			Amount: total,
			Status: paymentStatus,
		},
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, decrements); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &ServiceError{StatusCode: 400, Message: "Insufficient stock"}
		}
		s.logger.Error("Order creation transaction failed",
			zap.String("user_id", actor.ID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// GetOrders lists orders for the actor: customers see their own, sellers see
// orders containing their products, admins see everything.
func (s *OrderService) GetOrders(ctx context.Context, actor Actor, page, limit int) (*OrderListResponse, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var orders []models.Order
	var total int64
	var err error

	switch actor.Role {
	case models.RoleAdmin:
		orders, total, err = s.orderRepo.FindAll(ctx, page, limit)
	case models.RoleSeller:
		orders, total, err = s.orderRepo.FindBySellerID(ctx, actor.ID, page, limit)
	default:
		orders, total, err = s.orderRepo.FindByUserID(ctx, actor.ID, page, limit)
	}
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("role", actor.Role), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}, nil
}

// GetOrder fetches one order if the actor may view it.
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	sellerInvolved, svcErr := s.sellerInvolved(ctx, actor, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if !canViewOrder(actor, order, sellerInvolved) {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}
	return order, nil
}

// Invoice returns the invoice view of one order.
func (s *OrderService) Invoice(ctx context.Context, actor Actor, orderID uuid.UUID) (*InvoiceResponse, *ServiceError) {
	order, svcErr := s.GetOrder(ctx, actor, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	return &InvoiceResponse{
		Order:       order,
		Items:       order.OrderItems,
		Total:       order.Total,
		ShippingFee: order.ShippingFee,
	}, nil
}

// sellerInvolved resolves whether a seller actor owns a product in the
// order; always false for non-sellers.
func (s *OrderService) sellerInvolved(ctx context.Context, actor Actor, orderID uuid.UUID) (bool, *ServiceError) {
	if actor.Role != models.RoleSeller {
		return false, nil
	}
	involved, err := s.orderRepo.SellerInOrder(ctx, orderID, actor.ID)
	if err != nil {
		s.logger.Error("Seller ownership check failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return false, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	return involved, nil
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
