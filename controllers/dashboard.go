package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeminhtut/donortrack-be/services"
)

type DashboardController struct {
	reportService *services.ReportService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{
		reportService: services.NewReportService(),
	}
}

func uintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func dateQuery(c *gin.Context, name string) *time.Time {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func decimalQuery(c *gin.Context, name string) *decimal.Decimal {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// parseReportFilters reads the optional filter set shared by the dashboard and
// report endpoints. Malformed values behave like absent ones.
func parseReportFilters(c *gin.Context) services.ReportFilters {
	return services.ReportFilters{
		EntityID:   uintQuery(c, "entity_id"),
		CustomID:   c.Query("custom_id"),
		EntityName: c.Query("entity_name"),
		EntityType: c.Query("entity_type"),
		Location:   c.Query("location"),
		CurrencyID: uintQuery(c, "currency_id"),
		PurposeID:  uintQuery(c, "purpose_id"),
		DateFrom:   dateQuery(c, "date_from"),
		DateTo:     dateQuery(c, "date_to"),
		MinAmount:  decimalQuery(c, "min_amount"),
		MaxAmount:  decimalQuery(c, "max_amount"),
		MinMMK:     decimalQuery(c, "min_mmk"),
		MaxMMK:     decimalQuery(c, "max_mmk"),
		OrderBy:    c.Query("order_by"),
	}
}

func (dc *DashboardController) Index(c *gin.Context) {
	filters := parseReportFilters(c)

	totals, err := dc.reportService.DashboardTotals(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	byCurrency, err := dc.reportService.SummaryByCurrency(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute currency summary"})
		return
	}

	recent, err := dc.reportService.Recent(filters, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recent transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_donated":       totals.TotalDonated,
		"total_distributed":   totals.TotalDistributed,
		"remaining":           totals.Remaining,
		"summary_by_currency": byCurrency,
		"recent":              recent,
	})
}
