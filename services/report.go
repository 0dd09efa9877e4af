package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/gorm"
)

// ReportFilters is a conjunction of optional predicates over the ledger joined
// with the entity registry. A zero-valued field is a no-op, never an error.
type ReportFilters struct {
	EntityID   uint
	CustomID   string // exact, case-insensitive
	EntityName string // contains, case-insensitive
	EntityType string // donor | recipient
	Location   string // contains, case-insensitive
	CurrencyID uint
	PurposeID  uint
	DateFrom   *time.Time
	DateTo     *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	MinMMK     *decimal.Decimal
	MaxMMK     *decimal.Decimal
	OrderBy    string // allow-listed sort key, e.g. "-date", "amount"
}

// sortColumns is the allow-list of caller-selectable sort keys. Anything else
// falls back to newest-first.
var sortColumns = map[string]string{
	"date":           "transactions.date ASC, transactions.id ASC",
	"-date":          "transactions.date DESC, transactions.id DESC",
	"custom_id":      "entities.custom_id ASC",
	"-custom_id":     "entities.custom_id DESC",
	"amount":         "transactions.amount ASC",
	"-amount":        "transactions.amount DESC",
	"converted_mmk":  "transactions.converted_amount_mmk ASC",
	"-converted_mmk": "transactions.converted_amount_mmk DESC",
}

const defaultOrder = "transactions.date DESC, transactions.id DESC"

type ReportTotals struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalMMK    decimal.Decimal `json:"total_mmk"`
}

type DashboardTotals struct {
	TotalDonated     decimal.Decimal `json:"total_donated"`
	TotalDistributed decimal.Decimal `json:"total_distributed"`
	Remaining        decimal.Decimal `json:"remaining"`
}

type CurrencySummary struct {
	Currency    string          `json:"currency"`
	Donated     decimal.Decimal `json:"donated"`
	Distributed decimal.Decimal `json:"distributed"`
	Remaining   decimal.Decimal `json:"remaining"`
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// baseQuery excludes soft-deleted transactions and transactions whose entity
// has been soft-deleted, then applies the optional filters.
func (s *ReportService) baseQuery(f ReportFilters) *gorm.DB {
	query := config.DB.Model(&models.Transaction{}).
		Joins("JOIN entities ON entities.id = transactions.entity_id").
		Where("transactions.is_deleted = ? AND entities.is_deleted = ?", false, false)

	if f.EntityID != 0 {
		query = query.Where("transactions.entity_id = ?", f.EntityID)
	}
	if f.CustomID != "" {
		query = query.Where("LOWER(entities.custom_id) = LOWER(?)", strings.TrimSpace(f.CustomID))
	}
	if f.EntityName != "" {
		query = query.Where("LOWER(entities.name) LIKE LOWER(?)", fmt.Sprintf("%%%s%%", f.EntityName))
	}
	if f.EntityType == string(models.EntityTypeDonor) || f.EntityType == string(models.EntityTypeRecipient) {
		query = query.Where("entities.type = ?", f.EntityType)
	}
	if f.Location != "" {
		query = query.Where("LOWER(entities.location) LIKE LOWER(?)", fmt.Sprintf("%%%s%%", f.Location))
	}
	if f.CurrencyID != 0 {
		query = query.Where("transactions.currency_id = ?", f.CurrencyID)
	}
	if f.PurposeID != 0 {
		query = query.Where("transactions.purpose_id = ?", f.PurposeID)
	}
	if f.DateFrom != nil {
		query = query.Where("transactions.date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		query = query.Where("transactions.date <= ?", f.DateTo.Format("2006-01-02"))
	}
	if f.MinAmount != nil {
		query = query.Where("transactions.amount >= ?", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		query = query.Where("transactions.amount <= ?", f.MaxAmount.String())
	}
	if f.MinMMK != nil {
		query = query.Where("transactions.converted_amount_mmk >= ?", f.MinMMK.String())
	}
	if f.MaxMMK != nil {
		query = query.Where("transactions.converted_amount_mmk <= ?", f.MaxMMK.String())
	}

	return query
}

func orderClause(orderBy string) string {
	if clause, ok := sortColumns[orderBy]; ok {
		return clause
	}
	return defaultOrder
}

// FilterTransactions returns the filtered rows, paginated when perPage > 0.
func (s *ReportService) FilterTransactions(f ReportFilters, page, perPage int) ([]models.Transaction, int64, error) {
	var total int64
	if err := s.baseQuery(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.baseQuery(f).
		Preload("Entity").Preload("Currency").Preload("Purpose").
		Order(orderClause(f.OrderBy))
	if perPage > 0 {
		query = query.Limit(perPage).Offset((page - 1) * perPage)
	}

	var transactions []models.Transaction
	err := query.Find(&transactions).Error
	return transactions, total, err
}

// Totals sums amount and converted MMK over the filtered set.
func (s *ReportService) Totals(f ReportFilters) (*ReportTotals, error) {
	var row struct {
		TotalAmount decimal.NullDecimal
		TotalMMK    decimal.NullDecimal
	}
	err := s.baseQuery(f).
		Select("SUM(transactions.amount) AS total_amount, SUM(transactions.converted_amount_mmk) AS total_mmk").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ReportTotals{
		TotalAmount: row.TotalAmount.Decimal,
		TotalMMK:    row.TotalMMK.Decimal,
	}, nil
}

// DashboardTotals partitions the converted sums by entity type.
func (s *ReportService) DashboardTotals(f ReportFilters) (*DashboardTotals, error) {
	var row struct {
		TotalDonated     decimal.NullDecimal
		TotalDistributed decimal.NullDecimal
	}
	err := s.baseQuery(f).
		Select(`SUM(CASE WHEN entities.type = 'donor' THEN transactions.converted_amount_mmk ELSE 0 END) AS total_donated,
			SUM(CASE WHEN entities.type = 'recipient' THEN transactions.converted_amount_mmk ELSE 0 END) AS total_distributed`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	donated := row.TotalDonated.Decimal
	distributed := row.TotalDistributed.Decimal
	return &DashboardTotals{
		TotalDonated:     donated,
		TotalDistributed: distributed,
		Remaining:        donated.Sub(distributed),
	}, nil
}

// SummaryByCurrency computes donated/distributed/remaining per currency code.
func (s *ReportService) SummaryByCurrency(f ReportFilters) ([]CurrencySummary, error) {
	var rows []struct {
		Code        string
		Donated     decimal.NullDecimal
		Distributed decimal.NullDecimal
	}
	err := s.baseQuery(f).
		Joins("JOIN currencies ON currencies.id = transactions.currency_id").
		Select(`currencies.code AS code,
			SUM(CASE WHEN entities.type = 'donor' THEN transactions.converted_amount_mmk ELSE 0 END) AS donated,
			SUM(CASE WHEN entities.type = 'recipient' THEN transactions.converted_amount_mmk ELSE 0 END) AS distributed`).
		Group("currencies.code").
		Order("currencies.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]CurrencySummary, 0, len(rows))
	for _, r := range rows {
		donated := r.Donated.Decimal
		distributed := r.Distributed.Decimal
		summaries = append(summaries, CurrencySummary{
			Currency:    r.Code,
			Donated:     donated,
			Distributed: distributed,
			Remaining:   donated.Sub(distributed),
		})
	}
	return summaries, nil
}

// Recent returns the latest rows by date then id.
func (s *ReportService) Recent(f ReportFilters, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.baseQuery(f).
		Preload("Entity").Preload("Currency").Preload("Purpose").
		Order(defaultOrder).
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}
