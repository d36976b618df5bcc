package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/controllers"
	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
	"github.com/AYATON2/shoes-sub000/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Stub repositories (just enough for the checkout flow) ---

type stubOrderRepo struct {
	orders map[uuid.UUID]*models.Order
	stocks map[uuid.UUID]int
}

func (s *stubOrderRepo) CreateWithItems(_ context.Context, order *models.Order, decrements []repository.StockDecrement) error {
	for _, d := range decrements {
		if s.stocks[d.SKUID] < d.Quantity {
			return repository.ErrInsufficientStock
		}
	}
	for _, d := range decrements {
		s.stocks[d.SKUID] -= d.Quantity
	}
	order.ID = uuid.New()
	order.Payment.OrderID = order.ID
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (s *stubOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (s *stubOrderRepo) FindBySellerID(_ context.Context, _ uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range s.orders {
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (s *stubOrderRepo) SellerInOrder(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

type stubSKURepo struct {
	skus map[uuid.UUID]*models.SKU
}

func (s *stubSKURepo) Create(_ context.Context, _ *models.SKU) error { return nil }

func (s *stubSKURepo) FindByID(_ context.Context, id uuid.UUID) (*models.SKU, error) {
	sku, ok := s.skus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sku, nil
}

func (s *stubSKURepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.SKU, error) {
	var result []models.SKU
	for _, id := range ids {
		if sku, ok := s.skus[id]; ok {
			result = append(result, *sku)
		}
	}
	return result, nil
}

func (s *stubSKURepo) SetStock(_ context.Context, _ uuid.UUID, _ int) error { return nil }
func (s *stubSKURepo) ReferencedByOrderItem(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}
func (s *stubSKURepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubAddressRepo struct {
	addresses map[uuid.UUID]*models.Address
}

func (s *stubAddressRepo) Create(_ context.Context, _ *models.Address) error { return nil }

func (s *stubAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Address, error) {
	address, ok := s.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return address, nil
}

func (s *stubAddressRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]models.Address, error) {
	return nil, nil
}
func (s *stubAddressRepo) Update(_ context.Context, _ *models.Address) error { return nil }
func (s *stubAddressRepo) Delete(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type stubSaleRepo struct{}

func (stubSaleRepo) Create(_ context.Context, _ *models.Sale) error { return nil }
func (stubSaleRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubSaleRepo) FindByProductID(_ context.Context, _ uuid.UUID) ([]models.Sale, error) {
	return nil, nil
}
func (stubSaleRepo) ActiveForProduct(_ context.Context, _ uuid.UUID, _ time.Time) (*models.Sale, error) {
	return nil, nil
}
func (stubSaleRepo) SetActive(_ context.Context, _ uuid.UUID, _ bool) error { return nil }
func (stubSaleRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

type stubNotificationRepo struct {
	created int
}

func (s *stubNotificationRepo) Create(_ context.Context, _ *models.Notification) error {
	s.created++
	return nil
}
func (s *stubNotificationRepo) CreateBatch(_ context.Context, rows []models.Notification, _ int) error {
	s.created += len(rows)
	return nil
}
func (s *stubNotificationRepo) FindByUserID(_ context.Context, _ uuid.UUID, _ models.NotificationFilter) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (s *stubNotificationRepo) MarkRead(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}
func (s *stubNotificationRepo) MarkAllRead(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubNotificationRepo) Delete(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *models.User) error { return nil }
func (stubUserRepo) FindAll(_ context.Context, _, _ int) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (stubUserRepo) FindIDsByRole(_ context.Context, _ string) ([]uuid.UUID, error) {
	return nil, nil
}
func (stubUserRepo) UpdateRole(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	return 0, nil
}

// --- Router setup ---

type testEnv struct {
	router    *gin.Engine
	userID    uuid.UUID
	addressID uuid.UUID
	skuID     uuid.UUID
	orderRepo *stubOrderRepo
}

func setupOrderRouter(t *testing.T, role string) *testEnv {
	t.Helper()

	userID := uuid.New()
	addressID := uuid.New()
	product := &models.Product{ID: uuid.New(), SellerID: uuid.New(), Name: "Runner Pro", Price: 500.00}
	sku := &models.SKU{ID: uuid.New(), ProductID: product.ID, Size: "9", Color: "black", Stock: 5, Product: product}

	orderRepo := &stubOrderRepo{
		orders: make(map[uuid.UUID]*models.Order),
		stocks: map[uuid.UUID]int{sku.ID: sku.Stock},
	}
	skuRepo := &stubSKURepo{skus: map[uuid.UUID]*models.SKU{sku.ID: sku}}
	addressRepo := &stubAddressRepo{addresses: map[uuid.UUID]*models.Address{
		addressID: {ID: addressID, UserID: userID},
	}}

	logger := zap.NewNop()
	notifier := services.NewNotificationService(&stubNotificationRepo{}, stubUserRepo{}, logger)
	svc := services.NewOrderService(orderRepo, skuRepo, addressRepo, stubSaleRepo{}, notifier, nil, "", logger)
	oc := controllers.NewOrderController(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID.String())
		c.Set("role", role)
		c.Next()
	})
	r.POST("/orders", oc.PlaceOrder)
	r.GET("/orders", oc.GetOrders)
	r.GET("/orders/:id", oc.GetOrder)
	r.PUT("/orders/:id", oc.UpdateStatus)

	return &testEnv{router: r, userID: userID, addressID: addressID, skuID: sku.ID, orderRepo: orderRepo}
}

func (e *testEnv) placeOrderRequest(quantity int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"items":               []map[string]interface{}{{"sku_id": e.skuID, "quantity": quantity}},
		"shipping_address_id": e.addressID,
		"payment_method":      "gcash",
	})
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestController_PlaceOrder_Created(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	w := env.placeOrderRequest(2)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &order)
	assert.Equal(t, 1050.00, order.Total)
	assert.Equal(t, models.OrderStatusReceived, order.Status)
}

func TestController_PlaceOrder_MalformedBody(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{"items": "nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestController_PlaceOrder_InsufficientStock(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	w := env.placeOrderRequest(99)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_UpdateStatus_CustomerCancel(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	w := env.placeOrderRequest(1)
	assert.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &order)

	body, _ := json.Marshal(map[string]string{"status": "cancelled"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%s", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
}

func TestController_UpdateStatus_CustomerAdvanceForbidden(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	w := env.placeOrderRequest(1)
	var order models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &order)

	body, _ := json.Marshal(map[string]string{"status": "shipped"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%s", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestController_GetOrder_InvalidUUID(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	req, _ := http.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestController_GetOrder_NotFound(t *testing.T) {
	env := setupOrderRouter(t, models.RoleCustomer)

	req, _ := http.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
