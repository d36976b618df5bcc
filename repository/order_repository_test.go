package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func checkoutOrder(userID uuid.UUID, skuID uuid.UUID) *models.Order {
	return &models.Order{
		UserID:            userID,
		ShippingAddressID: uuid.New(),
		Status:            models.OrderStatusReceived,
		Total:             1050.00,
		ShippingFee:       models.ShippingFee,
		PaymentMethod:     models.PaymentMethodGCash,
		OrderItems: []models.OrderItem{
			{SKUID: skuID, Quantity: 2, Price: 500.00},
		},
		Payment: &models.Payment{
			Method: models.PaymentMethodGCash,
			Amount: 1050.00,
			Status: models.PaymentStatusCompleted,
		},
	}
}

func TestCreateWithItems_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	skuID := uuid.New()
	order := checkoutOrder(uuid.New(), skuID)
	decrements := []repository.StockDecrement{{SKUID: skuID, Quantity: 2}}

	mock.ExpectBegin()
	// Conditional decrement: only rows with enough stock match.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "skus" SET "stock"=stock - $1 WHERE id = $2 AND stock >= $3`)).
		WithArgs(2, skuID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.CreateWithItems(context.Background(), order, decrements)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItems_InsufficientStock_RollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	skuID := uuid.New()
	order := checkoutOrder(uuid.New(), skuID)
	decrements := []repository.StockDecrement{{SKUID: skuID, Quantity: 2}}

	mock.ExpectBegin()
	// Zero rows matched: not enough stock left. Nothing else may run.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "skus"`)).
		WithArgs(2, skuID, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateWithItems(context.Background(), order, decrements)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItems_SecondDecrementFails_RollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	skuA := uuid.New()
	skuB := uuid.New()
	order := checkoutOrder(uuid.New(), skuA)
	decrements := []repository.StockDecrement{
		{SKUID: skuA, Quantity: 1},
		{SKUID: skuB, Quantity: 3},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "skus"`)).
		WithArgs(1, skuA, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "skus"`)).
		WithArgs(3, skuB, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateWithItems(context.Background(), order, decrements)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	order, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, order)
}

func TestUpdateStatus_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), id, models.OrderStatusShipped)
	assert.NoError(t, err)
}

func TestSellerInOrder(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	sellerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "order_items" JOIN skus ON skus.id = order_items.sku_id JOIN products ON products.id = skus.product_id WHERE order_items.order_id = $1 AND products.seller_id = $2`)).
		WithArgs(orderID, sellerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	involved, err := repo.SellerInOrder(context.Background(), orderID, sellerID)
	assert.NoError(t, err)
	assert.True(t, involved)
}

func TestSellerInOrder_NotInvolved(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	involved, err := repo.SellerInOrder(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.False(t, involved)
}
