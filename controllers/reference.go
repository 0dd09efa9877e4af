package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
)

type ReferenceController struct{}

func NewReferenceController() *ReferenceController {
	return &ReferenceController{}
}

func (rc *ReferenceController) GetCurrencies(c *gin.Context) {
	var currencies []models.Currency
	if err := config.DB.Where("is_active = ?", true).Order("code ASC").Find(&currencies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

func (rc *ReferenceController) GetPurposes(c *gin.Context) {
	var purposes []models.Purpose
	if err := config.DB.Where("is_active = ?", true).Order("name ASC").Find(&purposes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purposes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purposes": purposes})
}
