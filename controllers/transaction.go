package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/middleware"
	"github.com/yeminhtut/donortrack-be/services"
	"github.com/yeminhtut/donortrack-be/websocket"
)

type TransactionController struct {
	transactionService *services.TransactionService
}

func NewTransactionController() *TransactionController {
	return &TransactionController{
		transactionService: services.NewTransactionService(),
	}
}

type TransactionRequest struct {
	Date         string `form:"date"`
	EntityID     uint   `form:"entity_id" binding:"required"`
	CurrencyID   uint   `form:"currency_id" binding:"required"`
	Amount       string `form:"amount" binding:"required"`
	ExchangeRate string `form:"exchange_rate"`
	PurposeID    *uint  `form:"purpose_id"`
	Notes        string `form:"notes"`
}

// parseDate accepts DD/MM/YYYY (the form convention) or YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use DD/MM/YYYY", s)
}

func (tc *TransactionController) buildInput(req *TransactionRequest) (*services.TransactionInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", req.Amount)
	}

	rate := decimal.NewFromInt(1)
	if req.ExchangeRate != "" {
		rate, err = decimal.NewFromString(req.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("invalid exchange rate %q", req.ExchangeRate)
		}
	}

	return &services.TransactionInput{
		EntityID:     req.EntityID,
		Date:         date,
		CurrencyID:   req.CurrencyID,
		Amount:       amount,
		ExchangeRate: rate,
		PurposeID:    req.PurposeID,
		Notes:        req.Notes,
	}, nil
}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// saveAttachments stores uploaded files under the per-transaction path and
// records an attachment row for each.
func (tc *TransactionController) saveAttachments(c *gin.Context, transactionID uint, files []*multipart.FileHeader) error {
	dir := filepath.Join(uploadDir(), "transactions", fmt.Sprintf("%d", transactionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, file := range files {
		stored := filepath.Join(dir, uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, stored); err != nil {
			return err
		}
		if _, err := tc.transactionService.AddAttachment(transactionID, stored, file.Filename); err != nil {
			return err
		}
	}
	return nil
}

func attachedFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["attachments"]
}

func transactionErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTransactionNotFound), errors.Is(err, services.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCurrencyInactive),
		errors.Is(err, services.ErrPurposeInactive),
		errors.Is(err, services.ErrAmountNotPositive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (tc *TransactionController) ListTransactions(c *gin.Context) {
	page := pageParam(c)
	transactions, total, err := tc.transactionService.ListTransactions(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        total,
		"page":         page,
	})
}

func (tc *TransactionController) GetTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	transaction, err := tc.transactionService.GetTransaction(id)
	if err != nil {
		c.JSON(transactionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := tc.buildInput(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := tc.transactionService.CreateTransaction(*input, middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(transactionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if files := attachedFiles(c); len(files) > 0 {
		if err := tc.saveAttachments(c, transaction.ID, files); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction created but attachment upload failed"})
			return
		}
		transaction, _ = tc.transactionService.GetTransaction(transaction.ID)
	}

	config.WSHub.Broadcast(websocket.EventTransactionCreated, websocket.TransactionEvent{
		TransactionID: transaction.ID,
		EntityID:      transaction.EntityID,
		CustomID:      transaction.Entity.CustomID,
		EntityName:    transaction.Entity.Name,
		Currency:      transaction.Currency.Code,
		Amount:        transaction.Amount.String(),
		ConvertedMMK:  transaction.ConvertedAmountMMK.String(),
		Action:        "created",
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created successfully",
		"transaction": transaction,
	})
}

func (tc *TransactionController) UpdateTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := tc.buildInput(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// an omitted date keeps the stored one
	if input.Date.IsZero() {
		if existing, err := tc.transactionService.GetTransaction(id); err == nil {
			input.Date = existing.Date
		}
	}

	transaction, err := tc.transactionService.UpdateTransaction(id, *input, middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(transactionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if files := attachedFiles(c); len(files) > 0 {
		if err := tc.saveAttachments(c, transaction.ID, files); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction updated but attachment upload failed"})
			return
		}
		transaction, _ = tc.transactionService.GetTransaction(transaction.ID)
	}

	config.WSHub.Broadcast(websocket.EventTransactionUpdated, websocket.TransactionEvent{
		TransactionID: transaction.ID,
		EntityID:      transaction.EntityID,
		CustomID:      transaction.Entity.CustomID,
		EntityName:    transaction.Entity.Name,
		Currency:      transaction.Currency.Code,
		Amount:        transaction.Amount.String(),
		ConvertedMMK:  transaction.ConvertedAmountMMK.String(),
		Action:        "updated",
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": transaction,
	})
}

func (tc *TransactionController) SoftDeleteTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := tc.transactionService.SoftDeleteTransaction(id, middleware.CurrentUserID(c)); err != nil {
		c.JSON(transactionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	config.WSHub.Broadcast(websocket.EventTransactionDeleted, websocket.TransactionEvent{
		TransactionID: id,
		Action:        "deleted",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

func (tc *TransactionController) HardDeleteTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := tc.transactionService.HardDeleteTransaction(id, middleware.CurrentUserID(c)); err != nil {
		c.JSON(transactionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction permanently removed"})
}

func (tc *TransactionController) DownloadAttachment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	attachment, err := tc.transactionService.GetAttachment(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	c.FileAttachment(attachment.FilePath, attachment.FileName)
}
