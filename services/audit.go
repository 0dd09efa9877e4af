package services

import (
	"encoding/json"
	"reflect"

	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/gorm"
)

type AuditService struct{}

func NewAuditService() *AuditService {
	return &AuditService{}
}

// Record appends one audit row. It takes the caller's *gorm.DB so the row
// commits or rolls back together with the mutation it describes.
func (s *AuditService) Record(db *gorm.DB, action models.AuditAction, userID *uint, objectType string, objectID uint, changes map[string]interface{}) error {
	if changes == nil {
		changes = map[string]interface{}{}
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return err
	}
	entry := models.AuditLog{
		Action:     action,
		UserID:     userID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Changes:    data,
	}
	return db.Create(&entry).Error
}

// FieldChanges returns {field: [old, new]} for every field whose value differs
// between the two snapshots. Decimal and time values should be passed as
// strings so the comparison (and the stored JSON) is stable.
func FieldChanges(oldValues, newValues map[string]interface{}) map[string]interface{} {
	changes := map[string]interface{}{}
	for field, oldVal := range oldValues {
		newVal, ok := newValues[field]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			changes[field] = []interface{}{oldVal, newVal}
		}
	}
	return changes
}

// ListAuditLogs returns audit rows newest-first with optional object/action
// filters. Used by the admin review endpoint.
func (s *AuditService) ListAuditLogs(objectType string, objectID uint, action string, page, perPage int) ([]models.AuditLog, int64, error) {
	filter := func() *gorm.DB {
		query := config.DB.Model(&models.AuditLog{})
		if objectType != "" {
			query = query.Where("object_type = ?", objectType)
		}
		if objectID != 0 {
			query = query.Where("object_id = ?", objectID)
		}
		if action != "" {
			query = query.Where("action = ?", action)
		}
		return query
	}

	var total int64
	if err := filter().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := filter().Preload("User").
		Order("created_at DESC, id DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&logs).Error
	return logs, total, err
}
