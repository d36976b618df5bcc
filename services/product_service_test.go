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

type productFixture struct {
	productRepo *mockProductRepo
	skuRepo     *mockSKURepo
	svc         *services.ProductService

	seller services.Actor
	admin  services.Actor
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	f := &productFixture{
		productRepo: newMockProductRepo(),
		skuRepo:     newMockSKURepo(),
	}
	f.seller = services.Actor{ID: uuid.New(), Role: models.RoleSeller}
	f.admin = services.Actor{ID: uuid.New(), Role: models.RoleAdmin}

	logger, _ := zap.NewDevelopment()
	f.svc = services.NewProductService(f.productRepo, f.skuRepo, logger)
	return f
}

func (f *productFixture) createProduct(t *testing.T) *models.Product {
	t.Helper()
	product, svcErr := f.svc.Create(context.Background(), f.seller, &services.CreateProductRequest{
		Name:  "Runner Pro",
		Price: 500.00,
	})
	assert.Nil(t, svcErr)
	return product
}

func TestProductCreate_CustomerForbidden(t *testing.T) {
	f := newProductFixture(t)

	customer := services.Actor{ID: uuid.New(), Role: models.RoleCustomer}
	_, svcErr := f.svc.Create(context.Background(), customer, &services.CreateProductRequest{
		Name:  "Sneaky",
		Price: 1.00,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
}

func TestProductUpdate_OwnershipEnforced(t *testing.T) {
	f := newProductFixture(t)
	product := f.createProduct(t)

	otherSeller := services.Actor{ID: uuid.New(), Role: models.RoleSeller}
	_, svcErr := f.svc.Update(context.Background(), otherSeller, product.ID, &services.UpdateProductRequest{Price: 1.00})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)

	updated, svcErr := f.svc.Update(context.Background(), f.admin, product.ID, &services.UpdateProductRequest{Price: 450.00})
	assert.Nil(t, svcErr)
	assert.Equal(t, 450.00, updated.Price)
	assert.Equal(t, "Runner Pro", updated.Name, "unset fields keep their values")
}

func TestCreateSKU_AndSetStock(t *testing.T) {
	f := newProductFixture(t)
	product := f.createProduct(t)

	sku, svcErr := f.svc.CreateSKU(context.Background(), f.seller, product.ID, &services.CreateSKURequest{
		Size:  "9",
		Color: "black",
		Stock: 10,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, 10, sku.Stock)

	// FindByID preloads the product in the real repository.
	f.skuRepo.skus[sku.ID].Product = product

	updated, svcErr := f.svc.SetSKUStock(context.Background(), f.seller, sku.ID, 4)
	assert.Nil(t, svcErr)
	assert.Equal(t, 4, updated.Stock)

	_, svcErr = f.svc.SetSKUStock(context.Background(), f.seller, sku.ID, -1)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
}

func TestDeleteSKU_ReferencedByOrder(t *testing.T) {
	f := newProductFixture(t)
	product := f.createProduct(t)

	sku, svcErr := f.svc.CreateSKU(context.Background(), f.seller, product.ID, &services.CreateSKURequest{
		Size:  "10",
		Color: "white",
	})
	assert.Nil(t, svcErr)
	f.skuRepo.skus[sku.ID].Product = product
	f.skuRepo.referenced[sku.ID] = true

	svcErr = f.svc.DeleteSKU(context.Background(), f.seller, sku.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)

	f.skuRepo.referenced[sku.ID] = false
	svcErr = f.svc.DeleteSKU(context.Background(), f.seller, sku.ID)
	assert.Nil(t, svcErr)
}

func TestProductList_CategoryFilter(t *testing.T) {
	f := newProductFixture(t)
	_, _ = f.svc.Create(context.Background(), f.seller, &services.CreateProductRequest{Name: "Runner Pro", Price: 500, Category: "running"})
	_, _ = f.svc.Create(context.Background(), f.seller, &services.CreateProductRequest{Name: "Court Classic", Price: 300, Category: "tennis"})

	resp, svcErr := f.svc.List(context.Background(), "running", 1, 20)
	assert.Nil(t, svcErr)
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, "Runner Pro", resp.Products[0].Name)
}
