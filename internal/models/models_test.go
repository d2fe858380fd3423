package models_test

import (
	"context"
	"testing"

	"github.com/Skotchmaster/ecommerce/internal/db"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAndSeed(t *testing.T) {
	gdb, err := db.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(gdb))

	ctx := context.Background()
	require.NoError(t, models.Seed(ctx, gdb))
	require.NoError(t, models.Seed(ctx, gdb))

	var methods []models.PaymentMethod
	require.NoError(t, gdb.Find(&methods).Error)
	require.Len(t, methods, 1)
	assert.Equal(t, models.CreditCardID, methods[0].ID)
	assert.Equal(t, "Credit Card", methods[0].Name)
}

func TestBeforeCreate_AssignsID(t *testing.T) {
	gdb, err := db.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(gdb))

	cat := models.Category{Name: "Books"}
	require.NoError(t, gdb.Create(&cat).Error)
	assert.NotEqual(t, uuid.Nil, cat.ID)

	p := models.Product{
		Name: "Go", Description: "book", Image: "go.png",
		Price: decimal.RequireFromString("12.50"), Quantity: 3, CategoryID: cat.ID,
	}
	require.NoError(t, gdb.Create(&p).Error)

	var got models.Product
	require.NoError(t, gdb.Preload("Category").First(&got, "id = ?", p.ID).Error)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Price))
	require.NotNil(t, got.Category)
	assert.Equal(t, "Books", got.Category.Name)
}
