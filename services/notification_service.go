package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

// broadcastBatchSize bounds rows per INSERT during fan-out.
const broadcastBatchSize = 500

// NotificationService persists user-facing notifications. Synchronous
// inserts only; no retry, no delivery guarantee beyond the write.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Emit persists one unread notification for the target user.
func (s *NotificationService) Emit(ctx context.Context, userID uuid.UUID, orderID *uuid.UUID, title, message, notificationType string) error {
	n := &models.Notification{
		UserID:  userID,
		OrderID: orderID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to persist notification",
			zap.String("user_id", userID.String()),
			zap.String("type", notificationType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// BroadcastToCustomers fans one message out to every customer, inserting in
// bounded batches.
func (s *NotificationService) BroadcastToCustomers(ctx context.Context, title, message, notificationType string) error {
	ids, err := s.userRepo.FindIDsByRole(ctx, models.RoleCustomer)
	if err != nil {
		s.logger.Error("Failed to load customer IDs for broadcast", zap.Error(err))
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
			Type:    notificationType,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, rows, broadcastBatchSize); err != nil {
		s.logger.Error("Broadcast insert failed", zap.Int("rows", len(rows)), zap.Error(err))
		return err
	}

	s.logger.Info("Broadcast notification sent",
		zap.String("type", notificationType),
		zap.Int("recipients", len(rows)),
	)
	return nil
}

// List returns the actor's notifications.
func (s *NotificationService) List(ctx context.Context, actor Actor, filter models.NotificationFilter) ([]models.Notification, int64, *ServiceError) {
	notifications, total, err := s.notificationRepo.FindByUserID(ctx, actor.ID, filter)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to fetch notifications"}
	}
	return notifications, total, nil
}

// MarkRead marks one of the actor's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uuid.UUID) *ServiceError {
	affected, err := s.notificationRepo.MarkRead(ctx, id, actor.ID)
	if err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to update notification"}
	}
	if affected == 0 {
		return &ServiceError{StatusCode: 404, Message: "Notification not found"}
	}
	return nil
}

// MarkAllRead marks all of the actor's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) *ServiceError {
	if err := s.notificationRepo.MarkAllRead(ctx, actor.ID); err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to update notifications"}
	}
	return nil
}

// Delete removes one of the actor's notifications.
func (s *NotificationService) Delete(ctx context.Context, actor Actor, id uuid.UUID) *ServiceError {
	affected, err := s.notificationRepo.Delete(ctx, id, actor.ID)
	if err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to delete notification"}
	}
	if affected == 0 {
		return &ServiceError{StatusCode: 404, Message: "Notification not found"}
	}
	return nil
}
