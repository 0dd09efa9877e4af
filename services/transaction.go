package services

import (
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCurrencyInactive    = errors.New("currency not found or inactive")
	ErrPurposeInactive     = errors.New("purpose not found or inactive")
	ErrAmountNotPositive   = errors.New("amount must be greater than zero")
)

// TransactionInput carries the editable transaction fields from a controller.
type TransactionInput struct {
	EntityID     uint
	Date         time.Time
	CurrencyID   uint
	Amount       decimal.Decimal
	ExchangeRate decimal.Decimal
	PurposeID    *uint
	Notes        string
}

type TransactionService struct {
	entityService *EntityService
	auditService  *AuditService
}

func NewTransactionService() *TransactionService {
	return &TransactionService{
		entityService: NewEntityService(),
		auditService:  NewAuditService(),
	}
}

func (s *TransactionService) validate(input *TransactionInput) error {
	if !input.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	// The entity must exist and not be soft-deleted; checking here closes the
	// gap where a transaction could be written against a since-deleted entity.
	if _, err := s.entityService.GetEntity(input.EntityID); err != nil {
		return err
	}
	var currency models.Currency
	if err := config.DB.Where("id = ? AND is_active = ?", input.CurrencyID, true).First(&currency).Error; err != nil {
		return ErrCurrencyInactive
	}
	if input.PurposeID != nil {
		var purpose models.Purpose
		if err := config.DB.Where("id = ? AND is_active = ?", *input.PurposeID, true).First(&purpose).Error; err != nil {
			return ErrPurposeInactive
		}
	}
	if input.ExchangeRate.IsZero() {
		input.ExchangeRate = decimal.NewFromInt(1)
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	return nil
}

// CreateTransaction validates and inserts a ledger row. The converted MMK
// amount is derived in the model's BeforeSave hook.
func (s *TransactionService) CreateTransaction(input TransactionInput, actorID *uint) (*models.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		EntityID:     input.EntityID,
		Date:         input.Date,
		CurrencyID:   input.CurrencyID,
		Amount:       input.Amount,
		ExchangeRate: input.ExchangeRate,
		PurposeID:    input.PurposeID,
		Notes:        input.Notes,
		CreatedByID:  actorID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionCreate, actorID,
			models.ObjectTypeTransaction, transaction.ID, map[string]interface{}{"created": true})
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransaction(transaction.ID)
}

// GetTransaction looks up a live transaction with its references preloaded.
func (s *TransactionService) GetTransaction(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := config.DB.Preload("Entity").Preload("Currency").Preload("Purpose").Preload("Attachments").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func transactionSnapshot(t *models.Transaction) map[string]interface{} {
	var purposeID interface{}
	if t.PurposeID != nil {
		purposeID = *t.PurposeID
	}
	return map[string]interface{}{
		"entity_id":     t.EntityID,
		"date":          t.Date.Format("2006-01-02"),
		"currency_id":   t.CurrencyID,
		"amount":        t.Amount.String(),
		"exchange_rate": t.ExchangeRate.String(),
		"purpose_id":    purposeID,
		"notes":         t.Notes,
	}
}

// UpdateTransaction applies the input and saves, recomputing the converted
// amount regardless of which fields changed. The audit row records a real
// field diff.
func (s *TransactionService) UpdateTransaction(id uint, input TransactionInput, actorID *uint) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	oldValues := transactionSnapshot(transaction)

	transaction.EntityID = input.EntityID
	transaction.Date = input.Date
	transaction.CurrencyID = input.CurrencyID
	transaction.Amount = input.Amount
	transaction.ExchangeRate = input.ExchangeRate
	transaction.PurposeID = input.PurposeID
	transaction.Notes = input.Notes

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(transaction).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionUpdate, actorID,
			models.ObjectTypeTransaction, transaction.ID, FieldChanges(oldValues, transactionSnapshot(transaction)))
	})
	if err != nil {
		return nil, err
	}
	return s.GetTransaction(transaction.ID)
}

// SoftDeleteTransaction flips the deleted flag; the row stays put.
func (s *TransactionService) SoftDeleteTransaction(id uint, actorID *uint) error {
	transaction, err := s.GetTransaction(id)
	if err != nil {
		return err
	}

	transaction.IsDeleted = true
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(transaction).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionSoftDelete, actorID,
			models.ObjectTypeTransaction, transaction.ID, map[string]interface{}{"is_deleted": true})
	})
}

// HardDeleteTransaction removes the row and cascades to its attachments,
// including the stored files.
func (s *TransactionService) HardDeleteTransaction(id uint, actorID *uint) error {
	var transaction models.Transaction
	if err := config.DB.Preload("Attachments").First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&models.TransactionAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Transaction{}, id).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionDelete, actorID,
			models.ObjectTypeTransaction, id, map[string]interface{}{"deleted": true})
	})
	if err != nil {
		return err
	}

	for i := range transaction.Attachments {
		if err := os.Remove(transaction.Attachments[i].FilePath); err != nil && !os.IsNotExist(err) {
			// the DB row is gone; a leftover file is not worth failing the request
			continue
		}
	}
	return nil
}

// ListTransactions returns live rows newest-first (date, then id), paginated.
func (s *TransactionService) ListTransactions(page, perPage int) ([]models.Transaction, int64, error) {
	var total int64
	if err := config.DB.Model(&models.Transaction{}).Where("is_deleted = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := config.DB.Where("is_deleted = ?", false).
		Preload("Entity").Preload("Currency").Preload("Purpose").
		Order("date DESC, id DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&transactions).Error
	return transactions, total, err
}

// AddAttachment records an uploaded file against a transaction. The controller
// has already written the file to storedPath.
func (s *TransactionService) AddAttachment(transactionID uint, storedPath, originalName string) (*models.TransactionAttachment, error) {
	if _, err := s.GetTransaction(transactionID); err != nil {
		return nil, err
	}
	attachment := models.TransactionAttachment{
		TransactionID: transactionID,
		FilePath:      storedPath,
		FileName:      originalName,
	}
	if err := config.DB.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// GetAttachment looks up one attachment row.
func (s *TransactionService) GetAttachment(id uint) (*models.TransactionAttachment, error) {
	var attachment models.TransactionAttachment
	if err := config.DB.First(&attachment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &attachment, nil
}
