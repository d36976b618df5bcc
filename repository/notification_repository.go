package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
)

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateBatch(ctx context.Context, rows []models.Notification, batchSize int) error
	FindByUserID(ctx context.Context, userID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateBatch inserts rows in bounded batches so a broadcast never turns
// into one giant statement.
func (r *GormNotificationRepository) CreateBatch(ctx context.Context, rows []models.Notification, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error
}

func (r *GormNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	query := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("read = false")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}

func (r *GormNotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
