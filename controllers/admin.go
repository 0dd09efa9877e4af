package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"github.com/yeminhtut/donortrack-be/services"
)

type AdminController struct {
	authService  *services.AuthService
	auditService *services.AuditService
}

func NewAdminController() *AdminController {
	return &AdminController{
		authService:  services.NewAuthService(),
		auditService: services.NewAuditService(),
	}
}

type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Name     string          `json:"name" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
	IsActive *bool           `json:"is_active"`
}

func validRole(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleManager || role == models.RoleUser
}

func (ac *AdminController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin, manager or user"})
		return
	}

	user, err := ac.authService.CreateUser(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

func (ac *AdminController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if !validRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin, manager or user"})
			return
		}
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

type CurrencyRequest struct {
	Code     string `json:"code"` // required on create, optional on update
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

func (ac *AdminController) CreateCurrency(c *gin.Context) {
	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code is required"})
		return
	}

	currency := models.Currency{
		Code:     code,
		Name:     req.Name,
		IsActive: true,
	}
	if err := config.DB.Create(&currency).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"currency": currency})
}

// UpdateCurrency renames or (de)activates a currency. There is no delete:
// transactions keep referencing old codes.
func (ac *AdminController) UpdateCurrency(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var currency models.Currency
	if err := config.DB.First(&currency, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		return
	}

	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" {
		currency.Code = code
	}
	if req.Name != "" {
		currency.Name = req.Name
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&currency).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update currency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}

type PurposeRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (ac *AdminController) CreatePurpose(c *gin.Context) {
	var req PurposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purpose := models.Purpose{Name: req.Name, IsActive: true}
	if err := config.DB.Create(&purpose).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Purpose already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"purpose": purpose})
}

func (ac *AdminController) UpdatePurpose(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req PurposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var purpose models.Purpose
	if err := config.DB.First(&purpose, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purpose not found"})
		return
	}

	purpose.Name = req.Name
	if req.IsActive != nil {
		purpose.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&purpose).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purpose"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purpose": purpose})
}

func (ac *AdminController) GetAuditLogs(c *gin.Context) {
	page := pageParam(c)

	logs, total, err := ac.auditService.ListAuditLogs(
		c.Query("object_type"),
		uintQuery(c, "object_id"),
		c.Query("action"),
		page, pageSize,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}

	// decode the stored change JSON for the response
	entries := make([]gin.H, 0, len(logs))
	for i := range logs {
		entries = append(entries, gin.H{
			"id":          logs[i].ID,
			"action":      logs[i].Action,
			"user":        logs[i].User,
			"object_type": logs[i].ObjectType,
			"object_id":   logs[i].ObjectID,
			"changes":     logs[i].ChangeSet(),
			"created_at":  logs[i].CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_logs": entries,
		"count":      total,
		"page":       page,
	})
}
