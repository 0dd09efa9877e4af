package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/middleware"
	"github.com/yeminhtut/donortrack-be/models"
	"github.com/yeminhtut/donortrack-be/services"
	"github.com/yeminhtut/donortrack-be/websocket"
)

const pageSize = 25

type EntityController struct {
	entityService *services.EntityService
}

func NewEntityController() *EntityController {
	return &EntityController{
		entityService: services.NewEntityService(),
	}
}

type EntityRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Location string `json:"location"`
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (ec *EntityController) ListEntities(c *gin.Context) {
	page := pageParam(c)
	entities, total, err := ec.entityService.ListEntities(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entities": entities,
		"count":    total,
		"page":     page,
	})
}

func (ec *EntityController) CreateEntity(c *gin.Context) {
	var req EntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity, err := ec.entityService.CreateEntity(req.Name, models.EntityType(req.Type), req.Location, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAllocationRetry):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	config.WSHub.Broadcast(websocket.EventEntityCreated, websocket.EntityEvent{
		EntityID:   entity.ID,
		CustomID:   entity.CustomID,
		EntityName: entity.Name,
		Type:       string(entity.Type),
		Action:     "created",
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entity created successfully",
		"entity":  entity,
	})
}

func (ec *EntityController) UpdateEntity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req EntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity, err := ec.entityService.UpdateEntity(id, req.Name, models.EntityType(req.Type), req.Location, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	config.WSHub.Broadcast(websocket.EventEntityUpdated, websocket.EntityEvent{
		EntityID:   entity.ID,
		CustomID:   entity.CustomID,
		EntityName: entity.Name,
		Type:       string(entity.Type),
		Action:     "updated",
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Entity updated successfully",
		"entity":  entity,
	})
}

func (ec *EntityController) SoftDeleteEntity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ec.entityService.SoftDeleteEntity(id, middleware.CurrentUserID(c)); err != nil {
		if errors.Is(err, services.ErrEntityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	config.WSHub.Broadcast(websocket.EventEntityDeleted, websocket.EntityEvent{
		EntityID: id,
		Action:   "deleted",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Entity deleted"})
}

func (ec *EntityController) HardDeleteEntity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ec.entityService.HardDeleteEntity(id, middleware.CurrentUserID(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrEntityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrEntityHasTx):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entity permanently removed"})
}

func (ec *EntityController) Autocomplete(c *gin.Context) {
	results, err := ec.entityService.Autocomplete(c.Query("q"), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Autocomplete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
