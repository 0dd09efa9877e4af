package controllers

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"github.com/yeminhtut/donortrack-be/models"
	"github.com/yeminhtut/donortrack-be/services"
)

var reportHeaders = []string{"Date", "Entity ID", "Entity Name", "Type", "Currency", "Amount", "Rate", "MMK", "Purpose", "Location"}

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController() *ReportController {
	return &ReportController{
		reportService: services.NewReportService(),
	}
}

func reportRow(t *models.Transaction) []string {
	purpose := ""
	if t.Purpose != nil {
		purpose = t.Purpose.Name
	}
	return []string{
		t.Date.Format("02/01/2006"),
		t.Entity.CustomID,
		t.Entity.Name,
		t.Entity.Type.Display(),
		t.Currency.Code,
		t.Amount.String(),
		t.ExchangeRate.String(),
		t.ConvertedAmountMMK.String(),
		purpose,
		t.Entity.Location,
	}
}

func (rc *ReportController) Index(c *gin.Context) {
	filters := parseReportFilters(c)
	page := pageParam(c)

	transactions, total, err := rc.reportService.FilterTransactions(filters, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	totals, err := rc.reportService.Totals(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        total,
		"page":         page,
		"total_amount": totals.TotalAmount,
		"total_mmk":    totals.TotalMMK,
	})
}

// exportRows loads the full (unpaginated) filtered set plus totals.
func (rc *ReportController) exportRows(c *gin.Context) ([]models.Transaction, *services.ReportTotals, bool) {
	filters := parseReportFilters(c)

	transactions, _, err := rc.reportService.FilterTransactions(filters, 0, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return nil, nil, false
	}
	totals, err := rc.reportService.Totals(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return nil, nil, false
	}
	return transactions, totals, true
}

func (rc *ReportController) ExportCSV(c *gin.Context) {
	transactions, totals, ok := rc.exportRows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=transactions_report.csv")

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(reportHeaders)
	for i := range transactions {
		_ = writer.Write(reportRow(&transactions[i]))
	}
	_ = writer.Write([]string{})
	_ = writer.Write([]string{"", "", "", "", "", "TOTAL MMK", "", totals.TotalMMK.String()})
	writer.Flush()
}

func (rc *ReportController) ExportXLSX(c *gin.Context) {
	transactions, totals, ok := rc.exportRows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	_ = f.SetSheetRow(sheet, cell, &reportHeaders)
	rowNum := 2
	for i := range transactions {
		t := &transactions[i]
		purpose := ""
		if t.Purpose != nil {
			purpose = t.Purpose.Name
		}
		amount, _ := t.Amount.Float64()
		rate, _ := t.ExchangeRate.Float64()
		mmk, _ := t.ConvertedAmountMMK.Float64()
		row := []interface{}{
			t.Date.Format("02/01/2006"),
			t.Entity.CustomID,
			t.Entity.Name,
			t.Entity.Type.Display(),
			t.Currency.Code,
			amount,
			rate,
			mmk,
			purpose,
			t.Entity.Location,
		}
		cell, _ = excelize.CoordinatesToCellName(1, rowNum)
		_ = f.SetSheetRow(sheet, cell, &row)
		rowNum++
	}
	totalMMK, _ := totals.TotalMMK.Float64()
	totalRow := []interface{}{"", "", "", "", "", "TOTAL MMK", "", totalMMK}
	cell, _ = excelize.CoordinatesToCellName(1, rowNum+1)
	_ = f.SetSheetRow(sheet, cell, &totalRow)

	_ = f.SetColWidth(sheet, "A", "J", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions_report.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// column weights for the PDF table, scaled to the usable page width
var pdfColWeights = []float64{10, 8, 17, 9, 8, 10, 8, 12, 13, 12}

func (rc *ReportController) ExportPDF(c *gin.Context) {
	transactions, totals, ok := rc.exportRows(c)
	if !ok {
		return
	}

	orientation := "P"
	filename := "transactions_report.pdf"
	if landscape := c.Query("landscape"); landscape == "1" || landscape == "true" || landscape == "yes" {
		orientation = "L"
		filename = "transactions_report_landscape.pdf"
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 20
	var totalWeight float64
	for _, w := range pdfColWeights {
		totalWeight += w
	}
	widths := make([]float64, len(pdfColWeights))
	for i, w := range pdfColWeights {
		widths[i] = usable * w / totalWeight
	}

	// the header func runs on every page, so the column row repeats
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(usable, 8, "Transactions Report", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range reportHeaders {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	for i := range transactions {
		for j, val := range reportRow(&transactions[i]) {
			pdf.CellFormat(widths[j], 6, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 8)
	label := widths[0] + widths[1] + widths[2] + widths[3] + widths[4]
	pdf.CellFormat(label, 7, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[5]+widths[6], 7, "TOTAL MMK", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[7], 7, totals.TotalMMK.String(), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[8]+widths[9], 7, "", "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
