package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/services"
)

// mockCartStore stands in for the Redis-backed store.
type mockCartStore struct {
	carts map[string]*models.Cart
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string]*models.Cart)}
}

func (m *mockCartStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	return m.carts[userID], nil
}

func (m *mockCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	m.carts[cart.UserID] = cart
	return nil
}

func (m *mockCartStore) DeleteCart(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

func newCartFixture(t *testing.T) (*mockSKURepo, *services.CartService, services.Actor, uuid.UUID) {
	t.Helper()
	skuRepo := newMockSKURepo()
	sku := &models.SKU{Size: "9", Color: "black", Stock: 5}
	_ = skuRepo.Create(context.Background(), sku)

	logger, _ := zap.NewDevelopment()
	svc := services.NewCartService(newMockCartStore(), skuRepo, logger)
	actor := services.Actor{ID: uuid.New(), Role: models.RoleCustomer}
	return skuRepo, svc, actor, sku.ID
}

func TestCartGet_EmptyWhenMissing(t *testing.T) {
	_, svc, actor, _ := newCartFixture(t)

	cart, svcErr := svc.Get(context.Background(), actor)
	assert.Nil(t, svcErr)
	assert.Empty(t, cart.Items)
	assert.Equal(t, actor.ID.String(), cart.UserID)
}

func TestCartPutItem_UpsertsQuantity(t *testing.T) {
	_, svc, actor, skuID := newCartFixture(t)

	cart, svcErr := svc.PutItem(context.Background(), actor, skuID, 2)
	assert.Nil(t, svcErr)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, svcErr = svc.PutItem(context.Background(), actor, skuID, 5)
	assert.Nil(t, svcErr)
	assert.Len(t, cart.Items, 1, "same SKU overwrites, not appends")
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartPutItem_Validation(t *testing.T) {
	_, svc, actor, skuID := newCartFixture(t)

	_, svcErr := svc.PutItem(context.Background(), actor, skuID, 0)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)

	_, svcErr = svc.PutItem(context.Background(), actor, uuid.New(), 1)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
}

func TestCartRemoveAndClear(t *testing.T) {
	skuRepo, svc, actor, skuID := newCartFixture(t)

	other := &models.SKU{Size: "10", Color: "white", Stock: 2}
	_ = skuRepo.Create(context.Background(), other)

	_, _ = svc.PutItem(context.Background(), actor, skuID, 1)
	_, _ = svc.PutItem(context.Background(), actor, other.ID, 3)

	cart, svcErr := svc.RemoveItem(context.Background(), actor, skuID)
	assert.Nil(t, svcErr)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].SKUID)

	svcErr = svc.Clear(context.Background(), actor)
	assert.Nil(t, svcErr)

	cart, _ = svc.Get(context.Background(), actor)
	assert.Empty(t, cart.Items)
}
