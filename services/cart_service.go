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

// CartService manages the Redis-backed per-user cart. Checkout does not
// read the cart; it takes an explicit item list.
type CartService struct {
	store   repository.CartStore
	skuRepo repository.SKURepository
	logger  *zap.Logger
}

func NewCartService(store repository.CartStore, skuRepo repository.SKURepository, logger *zap.Logger) *CartService {
	return &CartService{
		store:   store,
		skuRepo: skuRepo,
		logger:  logger,
	}
}

// Get returns the actor's cart, empty if none exists.
func (s *CartService) Get(ctx context.Context, actor Actor) (*models.Cart, *ServiceError) {
	cart, err := s.store.GetCart(ctx, actor.ID.String())
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: actor.ID.String(), Items: []models.CartItem{}}
	}
	return cart, nil
}

// PutItem adds an item or overwrites its quantity.
func (s *CartService) PutItem(ctx context.Context, actor Actor, skuID uuid.UUID, quantity int) (*models.Cart, *ServiceError) {
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: 422, Message: "Quantity must be at least 1"}
	}

	if _, err := s.skuRepo.FindByID(ctx, skuID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 422, Message: "Unknown SKU"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}

	cart, svcErr := s.Get(ctx, actor)
	if svcErr != nil {
		return nil, svcErr
	}

	updated := false
	for i := range cart.Items {
		if cart.Items[i].SKUID == skuID {
			cart.Items[i].Quantity = quantity
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, models.CartItem{SKUID: skuID, Quantity: quantity})
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}
	return cart, nil
}

// RemoveItem drops one SKU from the cart.
func (s *CartService) RemoveItem(ctx context.Context, actor Actor, skuID uuid.UUID) (*models.Cart, *ServiceError) {
	cart, svcErr := s.Get(ctx, actor)
	if svcErr != nil {
		return nil, svcErr
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SKUID != skuID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart"}
	}
	return cart, nil
}

// Clear deletes the actor's cart.
func (s *CartService) Clear(ctx context.Context, actor Actor) *ServiceError {
	if err := s.store.DeleteCart(ctx, actor.ID.String()); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}
