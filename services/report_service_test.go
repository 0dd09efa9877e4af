package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeminhtut/donortrack-be/models"
)

func TestDashboardTotalsPartitionByEntityType(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	recipient := seedEntity(t, models.EntityTypeRecipient, "Recipient")
	currency := seedCurrency(t, "MMK")

	seedTransaction(t, donor, currency, "100.00", "1")
	seedTransaction(t, recipient, currency, "40.00", "1")

	totals, err := NewReportService().DashboardTotals(ReportFilters{})
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "100.00").Equal(totals.TotalDonated), "donated: %s", totals.TotalDonated)
	assert.True(t, mustDecimal(t, "40.00").Equal(totals.TotalDistributed), "distributed: %s", totals.TotalDistributed)
	assert.True(t, mustDecimal(t, "60.00").Equal(totals.Remaining), "remaining: %s", totals.Remaining)
}

func TestTotalsExcludeSoftDeletedRows(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	currency := seedCurrency(t, "MMK")
	svc := NewReportService()

	kept := seedTransaction(t, donor, currency, "100.00", "1")
	dropped := seedTransaction(t, donor, currency, "50.00", "1")
	require.NoError(t, NewTransactionService().SoftDeleteTransaction(dropped.ID, nil))

	totals, err := svc.Totals(ReportFilters{})
	require.NoError(t, err)
	assert.True(t, kept.ConvertedAmountMMK.Equal(totals.TotalMMK))
}

func TestTotalsExcludeTransactionsOfSoftDeletedEntities(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	gone := seedEntity(t, models.EntityTypeDonor, "Gone Donor")
	currency := seedCurrency(t, "MMK")

	seedTransaction(t, donor, currency, "100.00", "1")
	seedTransaction(t, gone, currency, "999.00", "1")
	require.NoError(t, NewEntityService().SoftDeleteEntity(gone.ID, nil))

	totals, err := NewReportService().Totals(ReportFilters{})
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "100.00").Equal(totals.TotalMMK))
}

func TestFilterTransactionsByEntityFields(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Golden Valley Trust")
	other := seedEntity(t, models.EntityTypeRecipient, "Village School")
	currency := seedCurrency(t, "MMK")
	svc := NewReportService()

	seedTransaction(t, donor, currency, "100.00", "1")
	seedTransaction(t, other, currency, "40.00", "1")

	// case-insensitive exact custom id
	rows, total, err := svc.FilterTransactions(ReportFilters{CustomID: "d0001"}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, donor.ID, rows[0].EntityID)

	// name contains
	_, total, err = svc.FilterTransactions(ReportFilters{EntityName: "valley"}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// type filter
	_, total, err = svc.FilterTransactions(ReportFilters{EntityType: "recipient"}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// no filters: everything
	_, total, err = svc.FilterTransactions(ReportFilters{}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestFilterTransactionsByDateAndAmountRange(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	currency := seedCurrency(t, "MMK")
	txSvc := NewTransactionService()
	svc := NewReportService()

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := txSvc.CreateTransaction(TransactionInput{
		EntityID: donor.ID, Date: jan, CurrencyID: currency.ID, Amount: mustDecimal(t, "50.00"),
	}, nil)
	require.NoError(t, err)
	_, err = txSvc.CreateTransaction(TransactionInput{
		EntityID: donor.ID, Date: mar, CurrencyID: currency.ID, Amount: mustDecimal(t, "500.00"),
	}, nil)
	require.NoError(t, err)

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	_, total, err := svc.FilterTransactions(ReportFilters{DateFrom: &from}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	min := mustDecimal(t, "100")
	_, total, err = svc.FilterTransactions(ReportFilters{MinAmount: &min}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	max := mustDecimal(t, "100")
	_, total, err = svc.FilterTransactions(ReportFilters{MaxAmount: &max}, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestFilterTransactionsSortAllowList(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	currency := seedCurrency(t, "MMK")
	svc := NewReportService()

	small := seedTransaction(t, donor, currency, "10.00", "1")
	large := seedTransaction(t, donor, currency, "90.00", "1")

	rows, _, err := svc.FilterTransactions(ReportFilters{OrderBy: "amount"}, 1, 25)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, small.ID, rows[0].ID)

	rows, _, err = svc.FilterTransactions(ReportFilters{OrderBy: "-amount"}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, large.ID, rows[0].ID)

	// unknown sort keys fall back to newest-first instead of erroring
	rows, _, err = svc.FilterTransactions(ReportFilters{OrderBy: "amount; DROP TABLE"}, 1, 25)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, large.ID, rows[0].ID)
}

func TestSummaryByCurrency(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	recipient := seedEntity(t, models.EntityTypeRecipient, "Recipient")
	mmk := seedCurrency(t, "MMK")
	usd := seedCurrency(t, "USD")

	seedTransaction(t, donor, mmk, "1000.00", "1")
	seedTransaction(t, donor, usd, "100.00", "2100")
	seedTransaction(t, recipient, usd, "40.00", "2100")

	summaries, err := NewReportService().SummaryByCurrency(ReportFilters{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// ordered by code
	assert.Equal(t, "MMK", summaries[0].Currency)
	assert.True(t, mustDecimal(t, "1000.00").Equal(summaries[0].Donated))
	assert.True(t, summaries[0].Distributed.IsZero())

	assert.Equal(t, "USD", summaries[1].Currency)
	assert.True(t, mustDecimal(t, "210000.00").Equal(summaries[1].Donated))
	assert.True(t, mustDecimal(t, "84000.00").Equal(summaries[1].Distributed))
	assert.True(t, mustDecimal(t, "126000.00").Equal(summaries[1].Remaining))
}

func TestRecentLimitsRows(t *testing.T) {
	setupTestDB(t)
	donor := seedEntity(t, models.EntityTypeDonor, "Donor")
	currency := seedCurrency(t, "MMK")

	for i := 0; i < 12; i++ {
		seedTransaction(t, donor, currency, "10.00", "1")
	}

	recent, err := NewReportService().Recent(ReportFilters{}, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}
