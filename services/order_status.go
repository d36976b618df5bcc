package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
)

// Authorization predicates for status transitions. Explicit functions over
// (actor, ownership) rather than a policy registry.

// canCancelOrder: admin, the customer who owns the order, or a seller with a
// product in the order.
func canCancelOrder(actor Actor, order *models.Order, sellerInvolved bool) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.ID == order.UserID {
		return true
	}
	return actor.Role == models.RoleSeller && sellerInvolved
}

// canAdvanceOrder: only admin or an involved seller may move an order
// through the workflow states. Customers cannot self-advance.
func canAdvanceOrder(actor Actor, sellerInvolved bool) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Role == models.RoleSeller && sellerInvolved
}

// canViewOrder: admin, the owner, or an involved seller.
func canViewOrder(actor Actor, order *models.Order, sellerInvolved bool) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.ID == order.UserID {
		return true
	}
	return actor.Role == models.RoleSeller && sellerInvolved
}

type orderStatusEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateStatus moves an order to a new workflow status. The status only has
// to be a valid enum value; no forward-only ordering is enforced. Terminal
// orders (delivered, cancelled) accept no further transitions. On an actual
// change exactly one notification goes to the order's owner.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, *ServiceError) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, &ServiceError{StatusCode: 422, Message: "Invalid order status"}
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to load order for status update", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}

	sellerInvolved, svcErr := s.sellerInvolved(ctx, actor, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	var authorized bool
	if newStatus == models.OrderStatusCancelled {
		authorized = canCancelOrder(actor, order, sellerInvolved)
	} else {
		authorized = canAdvanceOrder(actor, sellerInvolved)
	}
	if !authorized {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	oldStatus := order.Status
	if oldStatus == newStatus {
		// No change, no notification.
		return order, nil
	}
	if oldStatus.IsTerminal() {
		return nil, &ServiceError{StatusCode: 422, Message: "Order is already " + string(oldStatus)}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		s.logger.Error("Failed to persist order status",
			zap.String("order_id", orderID.String()),
			zap.String("status", string(newStatus)),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	order.Status = newStatus

	s.emitStatusNotification(ctx, order, newStatus)
	s.publishStatusEvent(ctx, order, oldStatus, newStatus)

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)),
		zap.String("actor_role", actor.Role),
	)
	return order, nil
}

// emitStatusNotification sends the single owner-facing notification for a
// status change. Shipped, delivered and cancelled messages carry a rendered
// line-item summary.
func (s *OrderService) emitStatusNotification(ctx context.Context, order *models.Order, newStatus models.OrderStatus) {
	message := fmt.Sprintf("Your order %s is now %s.", shortOrderRef(order.ID), newStatus)

	switch newStatus {
	case models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		if summary := s.lineItemSummary(ctx, order); summary != "" {
			message += "\n" + summary
		}
	}

	orderID := order.ID
	if err := s.notifier.Emit(ctx, order.UserID, &orderID, "Order update", message, models.NotificationTypeOrderStatus); err != nil {
		// Notification is a side effect; the transition itself stands.
		s.logger.Warn("Status notification not delivered", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

// lineItemSummary renders the order's lines from current product and sale
// state. Presentation only; nothing here is stored.
func (s *OrderService) lineItemSummary(ctx context.Context, order *models.Order) string {
	skuIDs := make([]uuid.UUID, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		skuIDs = append(skuIDs, item.SKUID)
	}
	skus, err := s.skuRepo.FindByIDs(ctx, skuIDs)
	if err != nil {
		s.logger.Warn("Line summary skipped, SKU load failed", zap.Error(err))
		return ""
	}
	skuByID := make(map[uuid.UUID]models.SKU, len(skus))
	for _, sku := range skus {
		skuByID[sku.ID] = sku
	}

	now := time.Now()
	var lines []string
	for _, item := range order.OrderItems {
		sku, ok := skuByID[item.SKUID]
		if !ok || sku.Product == nil {
			continue
		}
		line := fmt.Sprintf("- %s (%s/%s) x%d @ %.2f", sku.Product.Name, sku.Size, sku.Color, item.Quantity, item.Price)

		sale, saleErr := s.saleRepo.ActiveForProduct(ctx, sku.ProductID, now)
		if saleErr == nil && sale != nil && sale.AppliesAt(now) {
			line += fmt.Sprintf(" (%s, sale price %.2f)", sale.Description, sale.SalePrice(sku.Product.Price))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// publishStatusEvent pushes a best-effort event to SNS; failures never fail
// the request.
func (s *OrderService) publishStatusEvent(ctx context.Context, order *models.Order, oldStatus, newStatus models.OrderStatus) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	event := orderStatusEvent{
		EventType: "order.status_changed",
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Warn("SNS publish failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func shortOrderRef(id uuid.UUID) string {
	return "#" + strings.ToUpper(id.String()[:8])
}
