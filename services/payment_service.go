package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

// PaymentService handles the admin verification step for payments created at
// checkout.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	orderService *OrderService
	logger       *zap.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, orderService *OrderService, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		orderService: orderService,
		logger:       logger,
	}
}

// Verify sets a payment's status to completed or failed. A failed
// verification cancels the order through the normal transition path while
// the order is still cancellable, so the owner gets the usual notification.
func (s *PaymentService) Verify(ctx context.Context, actor Actor, paymentID uuid.UUID, status string) (*models.Payment, *ServiceError) {
	if status != models.PaymentStatusCompleted && status != models.PaymentStatusFailed {
		return nil, &ServiceError{StatusCode: 422, Message: "Invalid payment status"}
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to load payment", zap.String("payment_id", paymentID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to verify payment"}
	}

	now := time.Now()
	payment.Status = status
	payment.VerifiedBy = &actor.ID
	payment.VerifiedAt = &now
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to update payment", zap.String("payment_id", paymentID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to verify payment"}
	}

	if status == models.PaymentStatusFailed {
		if _, svcErr := s.orderService.UpdateStatus(ctx, actor, payment.OrderID, models.OrderStatusCancelled); svcErr != nil {
			// The order may already be terminal; the payment update stands.
			s.logger.Warn("Order not cancelled after failed payment",
				zap.String("order_id", payment.OrderID.String()),
				zap.String("reason", svcErr.Message),
			)
		}
	}

	s.logger.Info("Payment verified",
		zap.String("payment_id", paymentID.String()),
		zap.String("status", status),
		zap.String("verified_by", actor.ID.String()),
	)
	return payment, nil
}
