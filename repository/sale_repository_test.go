package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/repository"
)

func TestActiveForProduct_OpenEndedSale(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormSaleRepository(gormDB)

	productID := uuid.New()
	saleID := uuid.New()
	at := time.Now()

	// A sale without bounds is stored with NULL starts_at/ends_at and must
	// still match the window predicate.
	mock.ExpectQuery(regexp.QuoteMeta(`(starts_at IS NULL OR starts_at <= $2) AND (ends_at IS NULL OR ends_at >= $3)`)).
		WithArgs(productID, at, at, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "description", "percent_off", "active", "starts_at", "ends_at"}).
			AddRow(saleID, productID, "Clearance", 20.0, true, nil, nil))

	sale, err := repo.ActiveForProduct(context.Background(), productID, at)
	assert.NoError(t, err)
	assert.Equal(t, saleID, sale.ID)
	assert.Nil(t, sale.StartsAt)
	assert.Nil(t, sale.EndsAt)
	assert.True(t, sale.AppliesAt(at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveForProduct_NoneApplies(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormSaleRepository(gormDB)

	productID := uuid.New()
	at := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales"`)).
		WithArgs(productID, at, at, 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	sale, err := repo.ActiveForProduct(context.Background(), productID, at)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, sale)
}
