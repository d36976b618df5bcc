package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
	"github.com/AYATON2/shoes-sub000/services"
)

type mockProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindAll(_ context.Context, category string, _, _ int) ([]models.Product, int64, error) {
	var result []models.Product
	for _, p := range m.products {
		if category == "" || p.Category == category {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockProductRepo) FindBySellerID(_ context.Context, sellerID uuid.UUID, _, _ int) ([]models.Product, int64, error) {
	var result []models.Product
	for _, p := range m.products {
		if p.SellerID == sellerID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

type saleFixture struct {
	saleRepo         *mockSaleRepo
	productRepo      *mockProductRepo
	notificationRepo *mockNotificationRepo
	userRepo         *mockUserRepo
	sns              *mockSNSPublisher
	svc              *services.SaleService

	seller  services.Actor
	product *models.Product
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	f := &saleFixture{
		saleRepo:         newMockSaleRepo(),
		productRepo:      newMockProductRepo(),
		notificationRepo: newMockNotificationRepo(),
		userRepo:         newMockUserRepo(),
		sns:              &mockSNSPublisher{},
	}
	f.seller = services.Actor{ID: uuid.New(), Role: models.RoleSeller}
	f.product = &models.Product{SellerID: f.seller.ID, Name: "Runner Pro", Price: 500.00}
	_ = f.productRepo.Create(context.Background(), f.product)

	logger, _ := zap.NewDevelopment()
	notifier := services.NewNotificationService(f.notificationRepo, f.userRepo, logger)
	f.svc = services.NewSaleService(f.saleRepo, f.productRepo, notifier,
		f.sns, "arn:aws:sns:us-east-1:000000000000:sale-events", logger)
	return f
}

func (f *saleFixture) createSale(t *testing.T) *models.Sale {
	t.Helper()
	sale, svcErr := f.svc.Create(context.Background(), f.seller, &services.CreateSaleRequest{
		ProductID:   f.product.ID,
		Description: "Mid-season clearance",
		PercentOff:  20,
	})
	assert.Nil(t, svcErr)
	return sale
}

func TestSaleCreate_NonOwnerForbidden(t *testing.T) {
	f := newSaleFixture(t)

	otherSeller := services.Actor{ID: uuid.New(), Role: models.RoleSeller}
	_, svcErr := f.svc.Create(context.Background(), otherSeller, &services.CreateSaleRequest{
		ProductID:   f.product.ID,
		Description: "Not my shoes",
		PercentOff:  50,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
}

func TestSaleCreate_UnknownProduct(t *testing.T) {
	f := newSaleFixture(t)

	_, svcErr := f.svc.Create(context.Background(), f.seller, &services.CreateSaleRequest{
		ProductID:   uuid.New(),
		Description: "Ghost sale",
		PercentOff:  10,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestActivate_BroadcastsToCustomersOnly(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t)

	var customers []uuid.UUID
	for i := 0; i < 3; i++ {
		u := &models.User{ID: uuid.New(), Role: models.RoleCustomer}
		_ = f.userRepo.Create(context.Background(), u)
		customers = append(customers, u.ID)
	}
	_ = f.userRepo.Create(context.Background(), &models.User{ID: uuid.New(), Role: models.RoleSeller})

	activated, svcErr := f.svc.Activate(context.Background(), f.seller, sale.ID)
	assert.Nil(t, svcErr)
	assert.True(t, activated.Active)

	assert.Len(t, f.notificationRepo.notifications, 3)
	for _, id := range customers {
		rows := f.notificationRepo.forUser(id)
		assert.Len(t, rows, 1)
		assert.Equal(t, models.NotificationTypeSale, rows[0].Type)
		assert.Contains(t, rows[0].Message, "Mid-season clearance")
		assert.Contains(t, rows[0].Message, "400.00") // 500 at 20% off
	}

	assert.Len(t, f.sns.published, 1)
}

func TestActivate_NonOwnerForbidden(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t)

	stranger := services.Actor{ID: uuid.New(), Role: models.RoleSeller}
	_, svcErr := f.svc.Activate(context.Background(), stranger, sale.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
	assert.False(t, f.saleRepo.sales[sale.ID].Active)
}

func TestDeactivate_NoBroadcast(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t)
	_ = f.userRepo.Create(context.Background(), &models.User{ID: uuid.New(), Role: models.RoleCustomer})

	_, svcErr := f.svc.Activate(context.Background(), f.seller, sale.ID)
	assert.Nil(t, svcErr)
	before := len(f.notificationRepo.notifications)

	deactivated, svcErr := f.svc.Deactivate(context.Background(), f.seller, sale.ID)
	assert.Nil(t, svcErr)
	assert.False(t, deactivated.Active)
	assert.Len(t, f.notificationRepo.notifications, before, "deactivation is silent")
}

func TestAdminManagesAnySale(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t)

	admin := services.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	svcErr := f.svc.Delete(context.Background(), admin, sale.ID)
	assert.Nil(t, svcErr)

	_, err := f.saleRepo.FindByID(context.Background(), sale.ID)
	assert.Error(t, err)
}

var _ repository.ProductRepository = (*mockProductRepo)(nil)
