package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/gorm"
)

// setupTestDB points config.DB at a fresh in-memory database. Each test gets
// its own named memory DB so state never leaks between tests.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	config.DB = db
}

func seedCurrency(t *testing.T, code string) *models.Currency {
	t.Helper()
	currency := models.Currency{Code: code, Name: code, IsActive: true}
	require.NoError(t, config.DB.Create(&currency).Error)
	return &currency
}

func seedPurpose(t *testing.T, name string) *models.Purpose {
	t.Helper()
	purpose := models.Purpose{Name: name, IsActive: true}
	require.NoError(t, config.DB.Create(&purpose).Error)
	return &purpose
}

func seedEntity(t *testing.T, entityType models.EntityType, name string) *models.Entity {
	t.Helper()
	entity, err := NewEntityService().CreateEntity(name, entityType, "Yangon", nil)
	require.NoError(t, err)
	return entity
}

func seedTransaction(t *testing.T, entity *models.Entity, currency *models.Currency, amount, rate string) *models.Transaction {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	r, err := decimal.NewFromString(rate)
	require.NoError(t, err)
	tx, err := NewTransactionService().CreateTransaction(TransactionInput{
		EntityID:     entity.ID,
		CurrencyID:   currency.ID,
		Amount:       amt,
		ExchangeRate: r,
	}, nil)
	require.NoError(t, err)
	return tx
}

func auditCount(t *testing.T, objectType string, objectID uint, action models.AuditAction) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&models.AuditLog{}).
		Where("object_type = ? AND object_id = ? AND action = ?", objectType, objectID, action).
		Count(&count).Error)
	return count
}
