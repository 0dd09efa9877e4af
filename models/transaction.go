package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Transaction struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EntityID   uint      `json:"entity_id" gorm:"not null;index"`
	Entity     Entity    `json:"entity,omitempty"`
	Date       time.Time `json:"date" gorm:"type:date;not null;index"`
	CurrencyID uint      `json:"currency_id" gorm:"not null"`
	Currency   Currency  `json:"currency,omitempty"`

	Amount             decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate" gorm:"type:numeric(12,4);default:1"`
	ConvertedAmountMMK decimal.Decimal `json:"converted_amount_mmk" gorm:"type:numeric(14,2)"`

	PurposeID *uint    `json:"purpose_id"`
	Purpose   *Purpose `json:"purpose,omitempty" gorm:"foreignKey:PurposeID"`
	Notes     string   `json:"notes"`

	CreatedByID *uint `json:"created_by_id"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attachments []TransactionAttachment `json:"attachments,omitempty"`
}

// BeforeSave keeps converted_amount_mmk in sync on every write. A zero rate is
// treated as 1 so legacy rows without a rate still convert.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	rate := t.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	t.ConvertedAmountMMK = t.Amount.Mul(rate).Round(2)
	return nil
}

type TransactionAttachment struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	TransactionID uint        `json:"transaction_id" gorm:"not null;index"`
	Transaction   Transaction `json:"-"`
	FilePath      string      `json:"file_path" gorm:"not null"`
	FileName      string      `json:"file_name" gorm:"not null"` // original upload name
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
